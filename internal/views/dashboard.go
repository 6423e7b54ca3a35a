package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"tapcare/internal/models"
)

// preOpenedPopups is how many of the newest alerts get their map popup
// opened and their list card pulse-highlighted on load.
const preOpenedPopups = 2

// AlertCard is one alert prepared for display.
type AlertCard struct {
	ID        uint
	FullName  string
	StudentID string
	Contact   string
	// ContactHref is the prebuilt tel URI. Interpolating the raw contact
	// into an href would percent-encode a leading +.
	ContactHref template.URL
	Time        string
	Latitude    string
	Longitude   string
	Status      string
	Pulse       bool
}

// DashboardData is the complete view model for one dashboard render.
type DashboardData struct {
	Count              int
	HasAlerts          bool
	GeneratedAt        string
	Alerts             []AlertCard
	AlertsJSON         template.JS
	AutoRefreshSeconds int
}

// marker is the inline payload the map script consumes.
type marker struct {
	ID        uint    `json:"id"`
	FullName  string  `json:"full_name"`
	StudentID string  `json:"student_id"`
	Contact   string  `json:"contact"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}

// NewDashboardData builds the view model from the current alert set, newest
// first as the repository returns them.
func NewDashboardData(alerts []models.Alert, now time.Time, autoRefreshSeconds int) (DashboardData, error) {
	cards := make([]AlertCard, 0, len(alerts))
	markers := make([]marker, 0, len(alerts))

	for i, a := range alerts {
		fullName := a.FirstName + " " + a.LastName
		displayTime := a.AlertTime.Local().Format("02 Jan 2006 15:04:05")

		cards = append(cards, AlertCard{
			ID:          a.ID,
			FullName:    fullName,
			StudentID:   a.StudentID,
			Contact:     a.EmergencyContact,
			ContactHref: template.URL("tel:" + a.EmergencyContact),
			Time:        displayTime,
			Latitude:    fmt.Sprintf("%.6f", a.Latitude),
			Longitude:   fmt.Sprintf("%.6f", a.Longitude),
			Status:      a.DisplayStatus(),
			Pulse:       i < preOpenedPopups,
		})
		markers = append(markers, marker{
			ID:        a.ID,
			FullName:  fullName,
			StudentID: a.StudentID,
			Contact:   a.EmergencyContact,
			Time:      displayTime,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
			Status:    a.DisplayStatus(),
		})
	}

	// json.Marshal HTML-escapes <, > and &, so the payload is safe to embed
	// in the script block.
	payload, err := json.Marshal(markers)
	if err != nil {
		return DashboardData{}, err
	}

	return DashboardData{
		Count:              len(alerts),
		HasAlerts:          len(alerts) > 0,
		GeneratedAt:        now.Local().Format("02 Jan 2006 15:04:05"),
		Alerts:             cards,
		AlertsJSON:         template.JS(payload),
		AutoRefreshSeconds: autoRefreshSeconds,
	}, nil
}

// Templates parses the dashboard document and its error page. The router
// installs the result once at startup.
func Templates() *template.Template {
	t := template.Must(template.New("dashboard").Parse(dashboardHTML))
	template.Must(t.New("dashboard_error").Parse(dashboardErrorHTML))
	return t
}

const dashboardErrorHTML = `<!DOCTYPE html>
<html>
<head><title>Dashboard Error</title></head>
<body>
    <h1>Dashboard Error</h1>
    <p>{{.Message}}</p>
</body>
</html>`

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>TapCare Emergency Dashboard</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .header {
            background: linear-gradient(135deg, #dc3545, #c82333);
            color: white;
            padding: 20px;
            text-align: center;
            margin-bottom: 20px;
            border-radius: 8px;
            box-shadow: 0 4px 12px rgba(220, 53, 69, 0.3);
        }
        .controls {
            background: white;
            padding: 15px;
            margin-bottom: 20px;
            border-radius: 8px;
            display: flex;
            gap: 15px;
            align-items: center;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
        }
        .container { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
        .section {
            background: white;
            padding: 25px;
            border-radius: 12px;
            box-shadow: 0 4px 16px rgba(0,0,0,0.1);
        }
        #map { height: 500px; border-radius: 8px; border: 2px solid #dc3545; }
        .alert {
            background: white;
            border: 3px solid #dc3545;
            padding: 20px;
            margin: 15px 0;
            border-radius: 12px;
            cursor: pointer;
            transition: all 0.3s;
        }
        .alert:hover {
            background: #fff8f8;
            transform: translateY(-3px);
            box-shadow: 0 8px 24px rgba(220, 53, 69, 0.25);
        }
        .alert-title { font-weight: bold; color: #dc3545; margin-bottom: 12px; font-size: 18px; }
        .alert-details { font-size: 14px; color: #555; line-height: 1.8; }
        .btn {
            padding: 12px 24px;
            background: #dc3545;
            color: white;
            border: none;
            cursor: pointer;
            border-radius: 8px;
            font-weight: bold;
            transition: all 0.3s;
        }
        .btn:hover { background: #c82333; transform: translateY(-2px); }
        .btn-green { background: #28a745; }
        .btn-green:hover { background: #218838; }
        .status {
            margin-left: auto;
            padding: 8px 16px;
            border-radius: 20px;
            font-size: 14px;
            font-weight: 600;
            background: {{if .HasAlerts}}#f8d7da{{else}}#d4edda{{end}};
            color: {{if .HasAlerts}}#721c24{{else}}#155724{{end}};
        }
        .no-alerts { text-align: center; padding: 60px 20px; color: #666; }
        .badge {
            background: #dc3545;
            color: white;
            padding: 2px 8px;
            border-radius: 10px;
            font-size: 12px;
        }
        .emergency-pulse { animation: emergencyPulse 2s infinite; }
        @keyframes emergencyPulse {
            0% { border-color: #dc3545; }
            50% { border-color: #ff6b6b; }
            100% { border-color: #dc3545; }
        }
        @media (max-width: 768px) {
            .container { grid-template-columns: 1fr; }
            .controls { flex-direction: column; text-align: center; }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>&#128680; TapCare Emergency Dashboard</h1>
        <p>Database: CONNECTED | Active Alerts: {{.Count}} | Last Updated: {{.GeneratedAt}}</p>
    </div>

    <div class="controls">
        <button class="btn" onclick="window.location.reload()">&#128260; REFRESH NOW</button>
        <button class="btn btn-green" onclick="testEmergencySound()">&#128680; TEST SOUND</button>
        <div class="status">
            {{if .HasAlerts}}&#128680; ACTIVE EMERGENCIES{{else}}&#9989; ALL CLEAR{{end}}
        </div>
    </div>

    <div class="container">
        <div class="section">
            <h3>&#128506; Emergency Locations ({{.Count}})</h3>
            <div id="map"></div>
        </div>

        <div class="section">
            <h3>&#128203; Database Alerts</h3>
            <div id="alerts">
                {{if not .HasAlerts}}
                <div class="no-alerts">
                    <div style="font-size: 64px; margin-bottom: 20px;">&#9989;</div>
                    <div style="font-size: 18px; font-weight: bold;">NO ACTIVE EMERGENCIES</div>
                    <div style="font-size: 14px; margin-top: 10px; color: #28a745;">System operational - Click refresh to update</div>
                </div>
                {{else}}
                {{range .Alerts}}
                <div class="alert{{if .Pulse}} emergency-pulse{{end}}" data-lat="{{.Latitude}}" data-lng="{{.Longitude}}">
                    <div class="alert-title">&#128680; EMERGENCY ALERT #{{.ID}}</div>
                    <div class="alert-details">
                        <strong>Student:</strong> {{.FullName}}<br>
                        <strong>ID:</strong> {{.StudentID}}<br>
                        <strong>Contact:</strong> <a href="{{.ContactHref}}" style="color: #dc3545; font-weight: bold;">{{.Contact}}</a><br>
                        <strong>Time:</strong> {{.Time}}<br>
                        <strong>Location:</strong> {{.Latitude}}, {{.Longitude}}<br>
                        <strong>Status:</strong> <span class="badge">{{.Status}}</span>
                    </div>
                </div>
                {{end}}
                {{end}}
            </div>
        </div>
    </div>

    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <script>
        var emergencyMap = null;
        var audioContext = null;
        var alerts = {{.AlertsJSON}};

        function initDashboard() {
            try {
                audioContext = new (window.AudioContext || window.webkitAudioContext)();
            } catch (e) {
                console.log('Audio not supported');
            }
            initMap();
            initAlertClicks();
        }

        function initMap() {
            try {
                var defaultLat = alerts.length > 0 ? alerts[0].latitude : 14.5995;
                var defaultLng = alerts.length > 0 ? alerts[0].longitude : 120.9842;

                emergencyMap = L.map('map').setView([defaultLat, defaultLng], 12);

                L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
                    attribution: '&copy; OpenStreetMap | TapCare Emergency'
                }).addTo(emergencyMap);

                alerts.forEach(function(alert, index) {
                    var emergencyIcon = L.divIcon({
                        className: 'emergency-marker',
                        html: '<div style="width: 30px; height: 30px; background: radial-gradient(circle, #dc3545, #a71e2a); border: 3px solid white; border-radius: 50%; display: flex; align-items: center; justify-content: center; color: white; font-weight: bold; font-size: 14px; box-shadow: 0 0 15px rgba(220,53,69,0.7);">&#128680;</div>',
                        iconSize: [30, 30],
                        iconAnchor: [15, 15]
                    });

                    var marker = L.marker([alert.latitude, alert.longitude], { icon: emergencyIcon }).addTo(emergencyMap);

                    var popupContent =
                        '<div style="min-width: 250px; font-family: Arial, sans-serif;">' +
                        '<div style="background: linear-gradient(135deg, #dc3545, #c82333); color: white; padding: 12px; margin: -9px -12px 12px; font-weight: bold; text-align: center; border-radius: 8px 8px 0 0;">' +
                        '&#128680; EMERGENCY ALERT #' + alert.id +
                        '</div>' +
                        '<div style="line-height: 1.8; padding: 8px 0;">' +
                        '<strong>Student:</strong> ' + alert.full_name + '<br>' +
                        '<strong>ID:</strong> ' + alert.student_id + '<br>' +
                        '<strong>Contact:</strong> <a href="tel:' + alert.contact + '" style="color: #dc3545; font-weight: bold;">' + alert.contact + '</a><br>' +
                        '<strong>Time:</strong> ' + alert.time + '<br>' +
                        '<strong>Status:</strong> <span style="background: #dc3545; color: white; padding: 3px 8px; border-radius: 12px; font-size: 11px;">' + alert.status + '</span>' +
                        '</div>' +
                        '</div>';

                    marker.bindPopup(popupContent, { maxWidth: 300, closeButton: true });

                    if (index < 2) {
                        marker.openPopup();
                    }
                });

                if (alerts.length > 0) {
                    var group = new L.featureGroup(alerts.map(function(alert) {
                        return L.marker([alert.latitude, alert.longitude]);
                    }));
                    emergencyMap.fitBounds(group.getBounds().pad(0.2));
                }
            } catch (error) {
                console.error('Map initialization error:', error);
                document.getElementById('map').innerHTML = '<div style="display: flex; align-items: center; justify-content: center; height: 100%; background: #f8f9fa; color: #666; font-size: 16px;">Map temporarily unavailable</div>';
            }
        }

        function initAlertClicks() {
            document.querySelectorAll('.alert').forEach(function(alertEl) {
                alertEl.addEventListener('click', function() {
                    var lat = parseFloat(alertEl.getAttribute('data-lat'));
                    var lng = parseFloat(alertEl.getAttribute('data-lng'));
                    if (emergencyMap && !isNaN(lat) && !isNaN(lng)) {
                        emergencyMap.setView([lat, lng], 16);
                    }
                });
            });
        }

        function testEmergencySound() {
            if (!audioContext) {
                alert('Audio not available in this browser');
                return;
            }
            try {
                if (audioContext.state === 'suspended') {
                    audioContext.resume();
                }
                var osc1 = audioContext.createOscillator();
                var osc2 = audioContext.createOscillator();
                var gain = audioContext.createGain();

                osc1.connect(gain);
                osc2.connect(gain);
                gain.connect(audioContext.destination);

                osc1.frequency.setValueAtTime(800, audioContext.currentTime);
                osc2.frequency.setValueAtTime(1000, audioContext.currentTime);

                gain.gain.setValueAtTime(0, audioContext.currentTime);
                gain.gain.linearRampToValueAtTime(0.3, audioContext.currentTime + 0.1);
                gain.gain.linearRampToValueAtTime(0, audioContext.currentTime + 2);

                osc1.frequency.exponentialRampToValueAtTime(1000, audioContext.currentTime + 1);
                osc1.frequency.exponentialRampToValueAtTime(800, audioContext.currentTime + 2);
                osc2.frequency.exponentialRampToValueAtTime(1200, audioContext.currentTime + 1);
                osc2.frequency.exponentialRampToValueAtTime(1000, audioContext.currentTime + 2);

                osc1.start();
                osc2.start();
                osc1.stop(audioContext.currentTime + 2);
                osc2.stop(audioContext.currentTime + 2);
            } catch (error) {
                console.error('Sound error:', error);
                alert('Could not play emergency sound');
            }
        }

        document.addEventListener('DOMContentLoaded', initDashboard);

        {{if gt .AutoRefreshSeconds 0}}
        setTimeout(function() { window.location.reload(); }, {{.AutoRefreshSeconds}} * 1000);
        {{else}}
        console.log('Auto-refresh disabled: manual refresh only');
        {{end}}
    </script>
</body>
</html>`

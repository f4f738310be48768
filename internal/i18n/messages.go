package i18n

// Keys consumed by the forecast panel.
const (
	KeySearchButton     = "todayForecast.button"
	KeyWelcome          = "todayForecast.welcome"
	KeyToday            = "todayForecast.today"
	KeyUnknownLocation  = "location.unknown"
	KeyLocationServices = "notice.locationServices"
)

// WeatherKey is the lookup key for a condition label.
func WeatherKey(code string) string {
	return "weather." + code
}

var messages = map[string]map[string]string{
	"en": {
		KeySearchButton:            "Search for places",
		KeyWelcome:                 "Welcome! Search for a place or use your current location to see the forecast.",
		KeyToday:                   "Today",
		KeyUnknownLocation:         "Unknown location",
		KeyLocationServices:        "To get a forecast for your location, you must enable Location services.",
		WeatherKey("snow"):         "Snow",
		WeatherKey("sleet"):        "Sleet",
		WeatherKey("hail"):         "Hail",
		WeatherKey("thunderstorm"): "Thunderstorm",
		WeatherKey("heavy_rain"):   "Heavy Rain",
		WeatherKey("light_rain"):   "Light Rain",
		WeatherKey("showers"):      "Showers",
		WeatherKey("heavy_cloud"):  "Heavy Cloud",
		WeatherKey("light_cloud"):  "Light Cloud",
		WeatherKey("clear"):        "Clear",
	},
	"es": {
		KeySearchButton:            "Buscar lugares",
		KeyWelcome:                 "¡Bienvenido! Busca un lugar o usa tu ubicación actual para ver el pronóstico.",
		KeyToday:                   "Hoy",
		KeyUnknownLocation:         "Ubicación desconocida",
		KeyLocationServices:        "Para obtener el pronóstico de tu ubicación, debes activar los servicios de ubicación.",
		WeatherKey("snow"):         "Nieve",
		WeatherKey("sleet"):        "Aguanieve",
		WeatherKey("hail"):         "Granizo",
		WeatherKey("thunderstorm"): "Tormenta",
		WeatherKey("heavy_rain"):   "Lluvia intensa",
		WeatherKey("light_rain"):   "Lluvia ligera",
		WeatherKey("showers"):      "Chubascos",
		WeatherKey("heavy_cloud"):  "Muy nublado",
		WeatherKey("light_cloud"):  "Poco nublado",
		WeatherKey("clear"):        "Despejado",
	},
	"fr": {
		KeySearchButton:            "Rechercher un lieu",
		KeyWelcome:                 "Bienvenue ! Recherchez un lieu ou utilisez votre position pour voir la météo.",
		KeyToday:                   "Aujourd'hui",
		KeyUnknownLocation:         "Lieu inconnu",
		KeyLocationServices:        "Pour obtenir la météo de votre position, vous devez activer les services de localisation.",
		WeatherKey("snow"):         "Neige",
		WeatherKey("sleet"):        "Neige fondue",
		WeatherKey("hail"):         "Grêle",
		WeatherKey("thunderstorm"): "Orage",
		WeatherKey("heavy_rain"):   "Forte pluie",
		WeatherKey("light_rain"):   "Pluie légère",
		WeatherKey("showers"):      "Averses",
		WeatherKey("heavy_cloud"):  "Très nuageux",
		WeatherKey("light_cloud"):  "Peu nuageux",
		WeatherKey("clear"):        "Dégagé",
	},
	"de": {
		KeySearchButton:            "Orte suchen",
		KeyWelcome:                 "Willkommen! Suche einen Ort oder nutze deinen Standort, um die Vorhersage zu sehen.",
		KeyToday:                   "Heute",
		KeyUnknownLocation:         "Unbekannter Ort",
		KeyLocationServices:        "Um eine Vorhersage für deinen Standort zu erhalten, musst du die Ortungsdienste aktivieren.",
		WeatherKey("snow"):         "Schnee",
		WeatherKey("sleet"):        "Schneeregen",
		WeatherKey("hail"):         "Hagel",
		WeatherKey("thunderstorm"): "Gewitter",
		WeatherKey("heavy_rain"):   "Starkregen",
		WeatherKey("light_rain"):   "Leichter Regen",
		WeatherKey("showers"):      "Schauer",
		WeatherKey("heavy_cloud"):  "Stark bewölkt",
		WeatherKey("light_cloud"):  "Leicht bewölkt",
		WeatherKey("clear"):        "Klar",
	},
	"pt": {
		KeySearchButton:            "Procurar lugares",
		KeyWelcome:                 "Bem-vindo! Procure um lugar ou use sua localização atual para ver a previsão.",
		KeyToday:                   "Hoje",
		KeyUnknownLocation:         "Local desconhecido",
		KeyLocationServices:        "Para obter a previsão da sua localização, você precisa ativar os serviços de localização.",
		WeatherKey("snow"):         "Neve",
		WeatherKey("sleet"):        "Granizo fino",
		WeatherKey("hail"):         "Granizo",
		WeatherKey("thunderstorm"): "Tempestade",
		WeatherKey("heavy_rain"):   "Chuva forte",
		WeatherKey("light_rain"):   "Chuva fraca",
		WeatherKey("showers"):      "Pancadas de chuva",
		WeatherKey("heavy_cloud"):  "Muito nublado",
		WeatherKey("light_cloud"):  "Pouco nublado",
		WeatherKey("clear"):        "Céu limpo",
	},
}

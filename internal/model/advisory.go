package model

// Weather is the aggregated short-range forecast used for advice.
type Weather struct {
	RainNext3Days      bool    `json:"rain_next_3_days"`
	MaxRainProbability float64 `json:"max_rain_probability"`
	AvgMaxTemp         float64 `json:"avg_max_temp"`
	ForecastText       string  `json:"forecast_text,omitempty"`
	Error              string  `json:"error,omitempty"`
}

// Location is a village/taluka entry with its nearest market.
type Location struct {
	District     string  `json:"district" yaml:"district"`
	Taluka       string  `json:"taluka" yaml:"taluka"`
	Village      string  `json:"village,omitempty" yaml:"village"`
	NearestMandi string  `json:"nearest_mandi" yaml:"nearest_mandi"`
	Lat          float64 `json:"lat" yaml:"lat"`
	Lon          float64 `json:"lon" yaml:"lon"`
}

// ResolvedLocation is the place an advisory was computed for.
type ResolvedLocation struct {
	District string  `json:"district"`
	Taluka   string  `json:"taluka,omitempty"`
	Market   string  `json:"market"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Advisory is the composite response of the orchestrator.
type Advisory struct {
	ID            string           `json:"id"`
	Location      ResolvedLocation `json:"location"`
	Crop          string           `json:"crop"`
	PriceData     ResolvedPrice    `json:"price_data"`
	WeatherData   Weather          `json:"weather_data"`
	AdviceMarathi string           `json:"advice_marathi"`
	AudioBase64   string           `json:"audio_base64"`
	DataSource    string           `json:"data_source"`
}

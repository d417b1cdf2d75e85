// Package weather consulta OpenWeatherMap y da formato a la respuesta
// para el frontend. Las consultas pueden cachearse en Redis.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrCiudadNoEncontrada indica que el proveedor no conoce la ciudad.
var ErrCiudadNoEncontrada = errors.New("ciudad no encontrada")

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Datos es la forma ya aplanada que consume el frontend.
type Datos struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Pressure    int     `json:"pressure"`
	FeelsLike   float64 `json:"feelsLike"`
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Cache   *Cache
}

func NewClient(baseURL, apiKey string, cache *Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Cache:   cache,
	}
}

// respuesta del proveedor, solo los campos que interesan.
type upstream struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Actual devuelve el tiempo actual de una ciudad, de la caché si hay
// una entrada fresca.
func (c *Client) Actual(ctx context.Context, ciudad string) (*Datos, error) {
	if c.Cache != nil {
		if d, ok := c.Cache.Get(ctx, ciudad); ok {
			return d, nil
		}
	}

	u := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric&lang=es",
		c.BaseURL, url.QueryEscape(ciudad), url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCiudadNoEncontrada
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("respuesta %d del proveedor de clima", resp.StatusCode)
	}

	var up upstream
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		return nil, err
	}
	d := &Datos{
		City:        up.Name,
		Country:     up.Sys.Country,
		Temperature: up.Main.Temp,
		Humidity:    up.Main.Humidity,
		Pressure:    up.Main.Pressure,
		FeelsLike:   up.Main.FeelsLike,
		WindSpeed:   up.Wind.Speed,
	}
	if len(up.Weather) > 0 {
		d.Description = up.Weather[0].Description
		d.Icon = up.Weather[0].Icon
	}

	if c.Cache != nil {
		c.Cache.Set(ctx, ciudad, d)
	}
	return d, nil
}

package facility

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/golang/geo/s2"
	"gopkg.in/yaml.v3"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

// EarthRadiusKm средний радиус Земли
const EarthRadiusKm = 6371.0088

// Directory статический справочник центров проверки
type Directory struct {
	facilities []entity.InspectionFacility
}

type file struct {
	Facilities []entity.InspectionFacility `yaml:"facilities"`
}

// New создаёт справочник из готового списка
func New(facilities []entity.InspectionFacility) *Directory {
	return &Directory{facilities: cloneAll(facilities)}
}

// Load читает справочник из YAML-файла
func Load(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facilities file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse facilities file %s: %w", path, err)
	}
	for i, fc := range f.Facilities {
		if fc.ID == "" || fc.Name == "" {
			return nil, fmt.Errorf("facility #%d in %s: id and name are required", i+1, path)
		}
	}

	log.WithField("path", path).WithField("count", len(f.Facilities)).Info("facilities loaded")
	return New(f.Facilities), nil
}

// Default справочник с тремя сертифицированными центрами в Сеуле
func Default() *Directory {
	return New([]entity.InspectionFacility{
		{
			ID:             "1",
			Name:           "Seoul Asbestos Inspection Center",
			Address:        "123 Gangnam-daero, Gangnam-gu, Seoul",
			DistanceKm:     2.3,
			Phone:          "02-1234-5678",
			Certified:      true,
			EstimatedCost:  entity.CostRange{Min: 150000, Max: 300000},
			InspectionTime: "3-5 business days",
			Rating:         5,
			Coordinates:    &entity.Coordinates{Lat: 37.4979, Lng: 127.0276},
		},
		{
			ID:             "2",
			Name:           "Korea Environmental Analysis Institute",
			Address:        "456 Teheran-ro, Gangnam-gu, Seoul",
			DistanceKm:     3.7,
			Phone:          "02-2345-6789",
			Certified:      true,
			EstimatedCost:  entity.CostRange{Min: 120000, Max: 250000},
			InspectionTime: "2-4 business days",
			Rating:         4,
			Coordinates:    &entity.Coordinates{Lat: 37.5048, Lng: 127.0495},
		},
		{
			ID:             "3",
			Name:           "National Asbestos Inspection Service",
			Address:        "789 Yangjae-daero, Seocho-gu, Seoul",
			DistanceKm:     5.2,
			Phone:          "02-3456-7890",
			Certified:      true,
			EstimatedCost:  entity.CostRange{Min: 100000, Max: 200000},
			InspectionTime: "5-7 business days",
			Rating:         5,
			Coordinates:    &entity.Coordinates{Lat: 37.4833, Lng: 127.0322},
		},
	})
}

// Nearby возвращает центры по возрастанию расстояния.
// Если origin задан, расстояние пересчитывается для центров с координатами.
func (d *Directory) Nearby(ctx context.Context, origin *entity.Coordinates, limit int) ([]entity.InspectionFacility, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := cloneAll(d.facilities)
	if origin != nil {
		for i := range list {
			if list[i].Coordinates != nil {
				list[i].DistanceKm = Distance(*origin, *list[i].Coordinates)
			}
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i].DistanceKm, list[j].DistanceKm)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Distance расстояние по большой окружности в километрах
func Distance(a, b entity.Coordinates) float64 {
	from := s2.LatLngFromDegrees(a.Lat, a.Lng)
	to := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return from.Distance(to).Radians() * EarthRadiusKm
}

// NaN уходит в конец списка
func less(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a < b
}

func cloneAll(in []entity.InspectionFacility) []entity.InspectionFacility {
	out := make([]entity.InspectionFacility, len(in))
	for i, f := range in {
		if f.Coordinates != nil {
			c := *f.Coordinates
			f.Coordinates = &c
		}
		out[i] = f
	}
	return out
}

// Проверка реализации интерфейса
var _ port.FacilityDirectory = (*Directory)(nil)

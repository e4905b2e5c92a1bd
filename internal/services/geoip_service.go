package services

import (
	"errors"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"github.com/sirupsen/logrus"
)

// CityInfo is the location detected for a client address
type CityInfo struct {
	City        string  `json:"city"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Region      string  `json:"region"`
	PostalCode  string  `json:"postal_code"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CityLocator resolves client addresses to cities
type CityLocator interface {
	City(ip string) *CityInfo
}

type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

var errGeoIPClosed = errors.New("geoip database closed")

// GeoIPService looks up cities in a MaxMind city database. The database
// is opened on first use and shared by all requests until Close.
type GeoIPService struct {
	path string
	open func(path string) (cityReader, error)

	once    sync.Once
	mu      sync.RWMutex
	reader  cityReader
	openErr error
	closed  bool
}

// NewGeoIPService creates the lookup service; an empty path disables lookups
func NewGeoIPService(path string) *GeoIPService {
	return &GeoIPService{
		path: path,
		open: func(path string) (cityReader, error) {
			return geoip2.Open(path)
		},
	}
}

func (s *GeoIPService) load() (cityReader, error) {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			s.openErr = errGeoIPClosed
			return
		}
		s.reader, s.openErr = s.open(s.path)
	})
	return s.reader, s.openErr
}

// City returns the city of the address or nil. Lookup failures are logged
// and never surfaced.
func (s *GeoIPService) City(ip string) *CityInfo {
	if s == nil || s.path == "" {
		return nil
	}
	if ip == "" {
		logrus.Warn("No IP found on request")
		return nil
	}
	addr := net.ParseIP(ip)
	if addr == nil || addr.IsLoopback() {
		return nil
	}

	if _, err := s.load(); err != nil {
		logrus.WithError(err).Error("Failed to open GeoIP database")
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.reader == nil {
		return nil
	}

	record, err := s.reader.City(addr)
	if err != nil {
		logrus.WithError(err).Errorf("GeoIP lookup failed for %s", ip)
		return nil
	}
	if record.Location.Latitude == 0 {
		return nil
	}

	info := &CityInfo{
		City:        record.City.Names["en"],
		CountryCode: record.Country.IsoCode,
		CountryName: record.Country.Names["en"],
		PostalCode:  record.Postal.Code,
		TimeZone:    record.Location.TimeZone,
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
	}
	if len(record.Subdivisions) > 0 {
		info.Region = record.Subdivisions[0].IsoCode
	}
	return info
}

// Close releases the database. Later lookups return no city.
func (s *GeoIPService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Service identifies the resort module an order was placed in
type Service int

const (
	ServiceBakery      Service = 0
	ServiceBar         Service = 1
	ServiceJuice       Service = 2
	ServiceRestaurant  Service = 3
	ServiceRoomService Service = 4
	ServiceSpa         Service = 5
)

var serviceNames = [...]string{"Bakery", "Bar", "Juice", "Restaurant", "RoomService", "Spa"}

// AllServices lists services in canonical (print) order
func AllServices() []Service {
	return []Service{ServiceBakery, ServiceBar, ServiceJuice, ServiceRestaurant, ServiceRoomService, ServiceSpa}
}

func (s Service) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Service(%d)", int(s))
	}
	return serviceNames[s]
}

// Label is the human-readable name printed on bills and tickets
func (s Service) Label() string {
	switch s {
	case ServiceJuice:
		return "Juice Bar"
	case ServiceRoomService:
		return "Room Service"
	default:
		return s.String()
	}
}

func (s Service) Valid() bool {
	return s >= ServiceBakery && int(s) < len(serviceNames)
}

// RequiresTableOrRoom reports whether orders need a table or a room number.
func (s Service) RequiresTableOrRoom() bool {
	return s == ServiceRestaurant
}

// RequiresRoom reports whether orders need a room number.
func (s Service) RequiresRoom() bool {
	return s == ServiceRoomService
}

// ParseService accepts the canonical name, case-sensitive
func ParseService(name string) (Service, error) {
	for i, n := range serviceNames {
		if n == name {
			return Service(i), nil
		}
	}
	return 0, fmt.Errorf("unknown service %q", name)
}

func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Service) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !Service(i).Valid() {
			return fmt.Errorf("unknown service %d", i)
		}
		*s = Service(i)
		return nil
	}
	parsed, err := ParseService(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Service) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *Service) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*s = Service(v)
	case int32:
		*s = Service(v)
	case int:
		*s = Service(v)
	default:
		return fmt.Errorf("cannot scan %T into Service", value)
	}
	return nil
}

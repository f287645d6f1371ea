package domain

import (
	"github.com/suchimauz/booking-slot-discovery/internal/core/json_types"
)

type Doctor struct {
	ID        string              `json:"_id"`
	Name      string              `json:"name"`
	Specialty string              `json:"specialty"`
	Profile   string              `json:"profile,omitempty"`
	CreatedAt json_types.DateTime `json:"createdAt"`
}

// DoctorFilter - фильтр по врачу, хранит идентификатор или признак "все"
type DoctorFilter string

const DoctorFilterAll DoctorFilter = "all"

func (f DoctorFilter) IsAll() bool {
	return f == DoctorFilterAll || f == ""
}

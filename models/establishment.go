package models

import "time"

// Establishment is the root document for a service business: the owner's
// profile, the offered services, the staff roster and the weekly schedule
// bookings are generated against.
type Establishment struct {
	ID               string         `bson:"id" json:"id"`
	OwnerUID         string         `bson:"ownerUid" json:"ownerUid"` // auth provider subject of the owner
	Name             string         `bson:"name" json:"name"`
	Email            string         `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Address          string         `bson:"address,omitempty" json:"address,omitempty"`
	Timezone         string         `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Madrid"
	Schedule         WeeklySchedule `bson:"schedule" json:"schedule"`
	Services         []Service      `bson:"services,omitempty" json:"services,omitempty"`
	Staff            []StaffMember  `bson:"staff,omitempty" json:"staff,omitempty"`
	StripeCustomerID string         `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Location resolves the establishment's IANA timezone, falling back to UTC.
func (e Establishment) Location() *time.Location {
	if e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ServiceByID returns the offered service with the given id.
func (e Establishment) ServiceByID(id string) (Service, bool) {
	for _, s := range e.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// StaffByID returns the staff member with the given id.
func (e Establishment) StaffByID(id string) (StaffMember, bool) {
	for _, m := range e.Staff {
		if m.ID == id {
			return m, true
		}
	}
	return StaffMember{}, false
}

// StaffMember is a bookable person working at an establishment. A staff
// member may carry their own weekly schedule; when absent they inherit
// the establishment's.
type StaffMember struct {
	ID       string          `bson:"id" json:"id"`
	Name     string          `bson:"name" json:"name"`
	Email    string          `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Active   bool            `bson:"active" json:"active"`
	Schedule *WeeklySchedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
}

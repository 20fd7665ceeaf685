package domain

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleUser           Role = "user"
	RoleHospitalAdmin  Role = "hospital_admin"
	RoleBloodBankAdmin Role = "bloodbank_admin"
)

var ErrUnknownRole = errors.New("unknown role")

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleHospitalAdmin, RoleBloodBankAdmin:
		return true
	}
	return false
}

// DashboardPath maps a role to its canonical dashboard route.
// Unmapped roles land on the home page.
func (r Role) DashboardPath() string {
	switch r {
	case RoleUser:
		return "/dashboard/user"
	case RoleHospitalAdmin:
		return "/dashboard/hospital"
	case RoleBloodBankAdmin:
		return "/dashboard/blood-bank"
	default:
		return "/"
	}
}

type User struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Role          Role           `json:"role"`
	HospitalInfo  *HospitalInfo  `json:"hospitalInfo,omitempty"`
	BloodBankInfo *BloodBankInfo `json:"bloodBankInfo,omitempty"`
}

func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// ValidateProfile enforces the role/profile pairing: exactly the profile the
// role requires must be present, never the other one.
func (u *User) ValidateProfile() error {
	switch u.Role {
	case RoleUser:
		if u.HospitalInfo != nil || u.BloodBankInfo != nil {
			return fmt.Errorf("role %q must not carry a facility profile", u.Role)
		}
	case RoleHospitalAdmin:
		if u.HospitalInfo == nil {
			return fmt.Errorf("role %q requires a hospital profile", u.Role)
		}
		if u.BloodBankInfo != nil {
			return fmt.Errorf("role %q must not carry a blood bank profile", u.Role)
		}
	case RoleBloodBankAdmin:
		if u.BloodBankInfo == nil {
			return fmt.Errorf("role %q requires a blood bank profile", u.Role)
		}
		if u.HospitalInfo != nil {
			return fmt.Errorf("role %q must not carry a hospital profile", u.Role)
		}
	default:
		return ErrUnknownRole
	}
	return nil
}

type HospitalInfo struct {
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Contact  string       `json:"contact"`
	Beds     BedInventory `json:"beds"`
}

type BloodBankInfo struct {
	Name     string     `json:"name"`
	Location string     `json:"location"`
	Contact  string     `json:"contact"`
	Stock    BloodStock `json:"stock"`
}

package model

import "time"

// Delegate represents a conference participant together with their
// committee, delegation, school and housing status
type Delegate struct {
	PersonID          int64   `json:"person_id"`
	Name              string  `json:"name"`
	Surname           string  `json:"surname"`
	FullName          string  `json:"full_name"`
	Birthday          *string `json:"birthday"`
	Gender            *string `json:"gender"`
	PicturePath       *string `json:"picture_path"`
	PhoneNumber       *string `json:"phone_number"`
	Allergies         *string `json:"allergies"`
	CountryCode       string  `json:"country_code"`
	CountryName       string  `json:"country_name"`
	SessionID         int64   `json:"session_id"`
	SessionEdition    int     `json:"session_edition"`
	CommitteeID       *int64  `json:"committee_id"`
	CommitteeName     *string `json:"committee_name"`
	ForumAcronym      *string `json:"forum_acronym"`
	DelegationID      *int64  `json:"delegation_id"`
	DelegationName    *string `json:"delegation_name"`
	SchoolID          *int64  `json:"school_id"`
	SchoolName        *string `json:"school_name"`
	RoleConfirmed     *string `json:"role_confirmed"`
	RoleRequested     *string `json:"role_requested"`
	GroupConfirmed    *string `json:"group_confirmed"`
	GroupRequested    *string `json:"group_requested"`
	StatusApplication string  `json:"status_application"`
	StatusHousing     string  `json:"status_housing"`
	IsAmbassador      *bool   `json:"is_ambassador"`
	HousingAvailable  bool    `json:"housing_is_available"`
	HousingGuests     *int    `json:"housing_n_guests"`
	UpdatedAt         string  `json:"updated_at"`
	CreatedAt         string  `json:"created_at"`
}

// ListDelegatesParams filters the delegates listing. Nil fields are not sent.
// Limit and Offset fall back to the listing defaults when nil.
type ListDelegatesParams struct {
	SessionID         *int64
	DelegationID      *int64
	CommitteeID       *int64
	CountryCode       *string
	SchoolID          *int64
	StatusApplication *string
	StatusHousing     *string
	IsAmbassador      *bool
	UpdatedSince      *time.Time
	Limit             *int
	Offset            *int
}

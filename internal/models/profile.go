package models

import "time"

type Profile struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Avatar    string       `json:"avatar,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	Settings  UserSettings `json:"settings"`
}

// Clone returns a copy that shares no maps with p.
func (p Profile) Clone() Profile {
	p.Settings = p.Settings.Clone()
	return p
}

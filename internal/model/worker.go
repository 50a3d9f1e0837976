package model

import "time"

// Worker represents a registered worker record as stored in the `workers`
// table. Each field corresponds to a column in the database. The json tags
// shape the public representation; PinHash is never serialized and handlers
// must not leak it through other response types either.
//
// Fields:
//  ID              – primary key identifier of the worker.
//  PhoneNumber     – unique 10 digit phone number used for login and OTPs.
//  PinHash         – bcrypt hash of the 4 digit PIN.
//  FirstName       – given name.
//  Surname         – family name.
//  Age             – age in years.
//  Gender          – "male" or "female" per the schema enum.
//  AreaID          – foreign key into the areas table.
//  Bio             – optional free text, at most 500 characters.
//  Email           – optional contact email.
//  ProfilePhotoURL – optional /uploads path of the processed profile photo.
//  CreatedAt       – timestamp of registration completion.
//  UpdatedAt       – timestamp of last profile update.
type Worker struct {
	ID              uint64    `json:"id"`
	PhoneNumber     string    `json:"phone_number"`
	PinHash         string    `json:"-"`
	FirstName       string    `json:"first_name"`
	Surname         string    `json:"surname"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	AreaID          uint64    `json:"area_id"`
	Bio             *string   `json:"bio"`
	Email           *string   `json:"email"`
	ProfilePhotoURL *string   `json:"profile_photo_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WorkerSkill models a row in the `worker_skills` table. The (WorkerID,
// SkillID) pair is unique; SkillName is joined in from the skills table for
// responses and is not a column of worker_skills itself.
type WorkerSkill struct {
	ID              uint64 `json:"id"`
	WorkerID        uint64 `json:"worker_id"`
	SkillID         uint64 `json:"skill_id"`
	YearsExperience int    `json:"years_experience"`
	SkillName       string `json:"skill_name,omitempty"`
}

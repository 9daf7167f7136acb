package domain

import "time"

type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone     string    `json:"phone" validate:"required,max=20"`
	Address   string    `json:"address,omitempty"`
	IDProof   string    `json:"id_proof,omitempty" validate:"max=50"`
	CreatedAt time.Time `json:"created_at"`
}

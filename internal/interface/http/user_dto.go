package handlers

import (
	"time"

	"github.com/seuhd/campuscoffee/internal/domain/entity"
)

// UserDTO is the validated wire representation of a user. Timestamps
// and id are nullable: clients omit them on create, the server fills
// them on output and ignores incoming timestamp values.
type UserDTO struct {
	ID           *int64     `json:"id"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	Name         string     `json:"name" binding:"required,min=1,max=255,login_name"`
	EmailAddress string     `json:"emailAddress" binding:"required,email"`
	FirstName    string     `json:"firstName" binding:"required,min=1,max=255"`
	LastName     string     `json:"lastName" binding:"required,min=1,max=255"`
}

// toDomain maps the wire representation to the domain entity.
// Server-managed timestamps are deliberately dropped.
func (d *UserDTO) toDomain() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Name:         d.Name,
		EmailAddress: d.EmailAddress,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
	}
}

func fromDomain(u *entity.User) UserDTO {
	dto := UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		EmailAddress: u.EmailAddress,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
	}
	if !u.CreatedAt.IsZero() {
		createdAt := u.CreatedAt
		dto.CreatedAt = &createdAt
	}
	if !u.UpdatedAt.IsZero() {
		updatedAt := u.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

func fromDomainList(users []entity.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, fromDomain(&users[i]))
	}
	return dtos
}

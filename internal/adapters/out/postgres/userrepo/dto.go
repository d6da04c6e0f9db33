// Package userrepo persists users, including their outstanding verification
// challenge and reset grant, with GORM.
package userrepo

import (
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the row layout of the users table. The challenge and the reset
// grant are stored inline since a user holds at most one of each.
type UserDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role               string
	Email              string
	FirstName          string
	LastName           string
	PasswordHash       string
	PushAddress        *string
	ChallengeCode      *string
	ChallengePurpose   *string
	ChallengeExpiresAt *time.Time
	ResetToken         *string
	ResetExpiresAt     *time.Time
	EmailVerified      bool
	Active             bool
	CreatedAt          time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:            u.ID().Bytes(),
		Role:          u.Role().String(),
		Email:         u.Email(),
		FirstName:     u.FirstName(),
		LastName:      u.LastName(),
		PasswordHash:  u.PasswordHash(),
		EmailVerified: u.EmailVerified(),
		Active:        u.Active(),
	}

	if u.HasPushAddress() {
		address := u.PushAddress()
		dto.PushAddress = &address
	}

	if c := u.Challenge(); c != nil {
		code, purpose, expiresAt := c.Code(), c.Purpose().String(), c.ExpiresAt().UTC()
		dto.ChallengeCode = &code
		dto.ChallengePurpose = &purpose
		dto.ChallengeExpiresAt = &expiresAt
	}

	if g := u.ResetGrant(); g != nil {
		token, expiresAt := g.Token(), g.ExpiresAt().UTC()
		dto.ResetToken = &token
		dto.ResetExpiresAt = &expiresAt
	}

	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var challenge *user.Challenge
	if dto.ChallengeCode != nil && dto.ChallengePurpose != nil && dto.ChallengeExpiresAt != nil {
		purpose, purposeErr := user.ParsePurpose(*dto.ChallengePurpose)
		if purposeErr != nil {
			return nil, purposeErr
		}

		c, challengeErr := user.NewChallenge(*dto.ChallengeCode, purpose, dto.ChallengeExpiresAt.UTC())
		if challengeErr != nil {
			return nil, challengeErr
		}
		challenge = &c
	}

	var grant *user.ResetGrant
	if dto.ResetToken != nil && dto.ResetExpiresAt != nil {
		g, grantErr := user.NewResetGrant(*dto.ResetToken, dto.ResetExpiresAt.UTC())
		if grantErr != nil {
			return nil, grantErr
		}
		grant = &g
	}

	var pushAddress string
	if dto.PushAddress != nil {
		pushAddress = *dto.PushAddress
	}

	return user.RestoreUser(
		id,
		role,
		dto.Email,
		dto.FirstName,
		dto.LastName,
		dto.PasswordHash,
		pushAddress,
		challenge,
		grant,
		dto.EmailVerified,
		dto.Active,
	)
}

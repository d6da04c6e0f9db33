package http

import (
	"errors"
	"net/http"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/application/usecases/queries"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) userIDByEmail(c echo.Context, email string) (kernel.UUID, error) {
	query, err := queries.NewFindUserByEmailQuery(email)
	if err != nil {
		return kernel.UUID{}, err
	}

	found, err := s.handlers.FindUserByEmail.Handle(c.Request().Context(), query)
	if err != nil {
		return kernel.UUID{}, err
	}
	return found.ID, nil
}

// SendCode handles POST /api/v1/verification/codes. A code whose email could
// not be delivered is still valid and reported as issued_delivery_failed.
func (s *Server) SendCode(c echo.Context) error {
	var body sendCodeRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	purpose, err := user.ParsePurpose(body.Purpose)
	if err != nil {
		return s.fail(c, err)
	}

	userID, err := s.userIDByEmail(c, body.Email)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewIssueChallengeCommand(userID, purpose)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.IssueChallenge.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	resp := codeIssuedResponse{Outcome: result.Outcome.String()}
	if result.Outcome != commands.ChallengeAlreadyVerified {
		expiresAt := result.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}
	return c.JSON(http.StatusAccepted, resp)
}

// ValidateCode handles POST /api/v1/verification/codes/validate. A password
// recovery code is exchanged for a reset token.
func (s *Server) ValidateCode(c echo.Context) error {
	var body validateCodeRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	purpose, err := user.ParsePurpose(body.Purpose)
	if err != nil {
		return s.fail(c, err)
	}

	userID, err := s.userIDByEmail(c, body.Email)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewValidateChallengeCommand(userID, body.Code, purpose)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.ValidateChallenge.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	resp := codeAcceptedResponse{Purpose: result.Purpose.String()}
	if grant := result.ResetGrant; grant != nil {
		expiresAt := grant.ExpiresAt()
		resp.ResetToken = grant.Token()
		resp.ResetTokenExpiresAt = &expiresAt
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckResetToken handles POST /api/v1/password-reset/check. Nothing is
// consumed; an unknown email is reported as an invalid token.
func (s *Server) CheckResetToken(c echo.Context) error {
	var body resetTokenRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, err := s.userIDByEmail(c, body.Email)
	if errors.Is(err, commands.ErrActorNotFound) {
		return c.JSON(http.StatusOK, resetTokenCheckResponse{Valid: false})
	}
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewValidateResetGrantQuery(userID, body.Token)
	if err != nil {
		return s.fail(c, err)
	}

	valid, err := s.handlers.ValidateResetGrant.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resetTokenCheckResponse{Valid: valid})
}

// ResetPassword handles POST /api/v1/password-reset and consumes the token.
func (s *Server) ResetPassword(c echo.Context) error {
	var body resetTokenRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, err := s.userIDByEmail(c, body.Email)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConsumeResetGrantCommand(userID, body.Token, body.NewPassword)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.ConsumeResetGrant.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

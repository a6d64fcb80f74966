package service

import (
	"context"
	"testing"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store/memory"
	"github.com/stretchr/testify/suite"
)

type IdentitySuite struct {
	suite.Suite
	identity *IdentityService
	ctx      context.Context
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) SetupTest() {
	s.identity = NewIdentityService(memory.New())
	s.ctx = context.Background()
}

func (s *IdentitySuite) TestSignupAndValidate() {
	u, err := s.identity.Signup(s.ctx, "owner", "hunter2")
	s.Require().NoError(err)
	s.NotEqual("hunter2", u.PasswordHash, "passwords must never be stored in the clear")

	userId, err := s.identity.Validate(s.ctx, "owner", "hunter2")
	s.Require().NoError(err)
	s.Equal(u.UserId, userId)
}

func (s *IdentitySuite) TestValidateRejectsBadCredentials() {
	_, err := s.identity.Signup(s.ctx, "owner", "hunter2")
	s.Require().NoError(err)

	_, err = s.identity.Validate(s.ctx, "owner", "wrong")
	s.ErrorIs(err, models.ErrInvalidCredentials)

	_, err = s.identity.Validate(s.ctx, "nobody", "hunter2")
	s.ErrorIs(err, models.ErrInvalidCredentials)
}

func (s *IdentitySuite) TestSignupRejectsDuplicatesAndEmpties() {
	_, err := s.identity.Signup(s.ctx, "owner", "hunter2")
	s.Require().NoError(err)

	_, err = s.identity.Signup(s.ctx, "owner", "other")
	s.ErrorIs(err, models.ErrDuplicateUser)

	var verr *models.ValidationError
	_, err = s.identity.Signup(s.ctx, "", "pw")
	s.ErrorAs(err, &verr)
	_, err = s.identity.Signup(s.ctx, "owner2", "")
	s.ErrorAs(err, &verr)
}

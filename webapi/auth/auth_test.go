package auth_test

import (
	"testing"

	"github.com/amirasaad/storefront/pkg/domain/notification"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	testutils.APITestSuite
}

func notificationOfType(kind string) any {
	return mock.MatchedBy(func(n *notification.Notification) bool { return n.Type == kind })
}

func (s *AuthTestSuite) TestSignup() {
	s.Users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil).Once()
	s.Users.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil).Once()
	s.Notifications.On("Create", mock.Anything, notificationOfType("user.registration")).Return(nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/auth/signup",
		`{"username":"newuser","email":"new@example.com","password":"password123"}`, "")
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	data := s.Decode(resp).Data.(map[string]any)
	s.Equal("newuser", data["username"])
	s.NotContains(data, "password")
}

func (s *AuthTestSuite) TestSignupVariants() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{desc: "invalid body", body: `{"username":123}`, wantStatus: fiber.StatusBadRequest},
		{desc: "short password", body: `{"username":"abc","email":"a@b.co","password":"123"}`, wantStatus: fiber.StatusBadRequest},
		{desc: "bad email", body: `{"username":"abc","email":"nope","password":"password123"}`, wantStatus: fiber.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(fiber.MethodPost, "/auth/signup", tc.body, "")
			s.Equal(tc.wantStatus, resp.StatusCode)
		})
	}
}

func (s *AuthTestSuite) TestSignupDuplicateEmail() {
	s.Users.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/auth/signup",
		`{"username":"ada","email":"ada@example.com","password":"password123"}`, "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
}

func (s *AuthTestSuite) TestLogin() {
	u := s.NewUser(user.RoleUser)
	s.Users.On("GetByEmail", mock.Anything, "ada@example.com").Return(u, nil).Once()
	s.Notifications.On("Create", mock.Anything, notificationOfType("user.login")).Return(nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", `{"identity":"ada@example.com","password":"password123"}`, "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Decode(resp).Data.(map[string]any)
	s.NotEmpty(data["token"])
}

func (s *AuthTestSuite) TestLoginWrongPassword() {
	u := s.NewUser(user.RoleUser)
	s.Users.On("GetByUsername", mock.Anything, "ada").Return(u, nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", `{"identity":"ada","password":"wrong-password"}`, "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginUnknownUser() {
	s.Users.On("GetByUsername", mock.Anything, "ghost").Return(nil, user.ErrUserNotFound).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", `{"identity":"ghost","password":"password123"}`, "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

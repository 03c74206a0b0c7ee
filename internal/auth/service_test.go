package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/sekelas/kelasku/internal/auth"
)

const (
	testSecret   = "test-secret"
	testPassword = "hunter22"
)

func newService(t *testing.T) (*auth.Service, *auth.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	return auth.NewService(repo, testSecret, time.Hour), repo
}

func testUser(t *testing.T) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.User{
		ID:           uuid.New(),
		Email:        "admin@kelas.id",
		PasswordHash: hash,
	}
}

func assertKind(t *testing.T, err error, kind auth.ErrorKind) {
	t.Helper()

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, kind, authErr.Kind)
}

func TestService_SignIn_Success(t *testing.T) {
	svc, repo := newService(t)
	user := testUser(t)

	repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)

	token, err := svc.SignIn(context.Background(), "Admin@kelas.id ", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, user.Email, session.Email)
}

func TestService_SignIn_Failures(t *testing.T) {
	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *auth.MockRepository)
		wantKind  auth.ErrorKind
	}

	tests := []testCase{
		{
			name:     "InvalidEmail",
			email:    "not-an-email",
			password: testPassword,
			wantKind: auth.KindInvalidEmail,
		},
		{
			name:     "NotFound",
			email:    "ghost@kelas.id",
			password: testPassword,
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ghost@kelas.id").
					Return(nil, auth.ErrNotFound)
			},
			wantKind: auth.KindNotFound,
		},
		{
			name:     "Disabled",
			email:    "admin@kelas.id",
			password: testPassword,
			setupMock: func(m *auth.MockRepository) {
				user := testUser(t)
				user.Disabled = true
				m.EXPECT().
					GetUserByEmail(gomock.Any(), user.Email).
					Return(user, nil)
			},
			wantKind: auth.KindDisabled,
		},
		{
			name:     "WrongPassword",
			email:    "admin@kelas.id",
			password: "wrong",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "admin@kelas.id").
					Return(testUser(t), nil)
			},
			wantKind: auth.KindWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			token, err := svc.SignIn(context.Background(), tt.email, tt.password)

			assert.Empty(t, token)
			assertKind(t, err, tt.wantKind)
		})
	}
}

func TestService_SignIn_ThrottlesAfterRepeatedFailures(t *testing.T) {
	svc, repo := newService(t)
	user := testUser(t)

	repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil).Times(5)

	for range 5 {
		_, err := svc.SignIn(context.Background(), user.Email, "wrong")
		assertKind(t, err, auth.KindWrongPassword)
	}

	// Sixth attempt is rejected before the repository is consulted, even
	// with the right password.
	_, err := svc.SignIn(context.Background(), user.Email, testPassword)
	assertKind(t, err, auth.KindTooManyRequests)
}

func TestService_Verify_RejectsBadTokens(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)

	other := auth.NewService(nil, "different-secret", time.Hour)

	repoSvc, repo := newService(t)
	user := testUser(t)
	repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)

	token, err := repoSvc.SignIn(context.Background(), user.Email, testPassword)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err, "token signed with another secret must not verify")
}

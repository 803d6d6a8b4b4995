package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/models"
	"github.com/dkote/mood-journal/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		username     string
		password     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "pw1",
			wantErr:  nil,
		},
		{
			name:         "user already exists",
			username:     "bob",
			password:     "pass123",
			existingUser: &models.UserDB{ID: 7, Username: "bob"},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			username:  "eve",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			username:  "carol",
			password:  "pass123",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockAdmins := services.NewMockAdminReader(ctrl)
			mockTokens := services.NewMockTokenGenerator(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockAdmins, mockTokens)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.username, gomock.Any()).
					Return(int64(1), tt.writerErr)
			}

			err := svc.Register(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewAuthService(
		services.NewMockUserReader(ctrl),
		services.NewMockUserWriter(ctrl),
		services.NewMockAdminReader(ctrl),
		services.NewMockTokenGenerator(ctrl),
	)

	assert.ErrorIs(t, svc.Register(context.Background(), "", "pw"), services.ErrEmptyCredentials)
	assert.ErrorIs(t, svc.Register(context.Background(), "alice", ""), services.ErrEmptyCredentials)
}

func TestAuthService_Register_StoresHashNotPlaintext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter,
		services.NewMockAdminReader(ctrl), services.NewMockTokenGenerator(ctrl))

	mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)

	var storedHash string
	mockWriter.EXPECT().
		Save(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string) (int64, error) {
			storedHash = hash
			return 1, nil
		})

	err := svc.Register(context.Background(), "alice", "pw1")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw1", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("pw1")))
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	alice := &models.UserDB{ID: 3, Username: "alice", PasswordHash: string(hash)}

	tests := []struct {
		name      string
		username  string
		password  string
		user      *models.UserDB
		readerErr error
		wantToken string
		wantErr   error
	}{
		{
			name:      "successful login",
			username:  "alice",
			password:  "pw1",
			user:      alice,
			wantToken: "token123",
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "pw1",
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpw",
			user:     alice,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice",
			password:  "pw1",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockTokens := services.NewMockTokenGenerator(ctrl)

			svc := services.NewAuthService(mockReader,
				services.NewMockUserWriter(ctrl), services.NewMockAdminReader(ctrl), mockTokens)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.user, tt.readerErr)

			if tt.wantErr == nil {
				mockTokens.EXPECT().
					Generate(gomock.Any(), tt.user.ID, tt.user.Username, jwt.RoleUser).
					Return(tt.wantToken, nil)
			}

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, _ := bcrypt.GenerateFromPassword([]byte("adminpw"), bcrypt.DefaultCost)
	root := &models.AdminDB{ID: 1, Username: "root", PasswordHash: string(hash)}

	t.Run("successful admin login issues admin role token", func(t *testing.T) {
		mockAdmins := services.NewMockAdminReader(ctrl)
		mockTokens := services.NewMockTokenGenerator(ctrl)

		svc := services.NewAuthService(
			services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
			mockAdmins, mockTokens)

		mockAdmins.EXPECT().GetByUsername(gomock.Any(), "root").Return(root, nil)
		mockTokens.EXPECT().
			Generate(gomock.Any(), int64(1), "root", jwt.RoleAdmin).
			Return("admintoken", nil)

		token, err := svc.AdminLogin(context.Background(), "root", "adminpw")
		assert.NoError(t, err)
		assert.Equal(t, "admintoken", token)
	})

	t.Run("unknown admin", func(t *testing.T) {
		mockAdmins := services.NewMockAdminReader(ctrl)

		svc := services.NewAuthService(
			services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
			mockAdmins, services.NewMockTokenGenerator(ctrl))

		mockAdmins.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		token, err := svc.AdminLogin(context.Background(), "ghost", "adminpw")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("wrong admin password", func(t *testing.T) {
		mockAdmins := services.NewMockAdminReader(ctrl)

		svc := services.NewAuthService(
			services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
			mockAdmins, services.NewMockTokenGenerator(ctrl))

		mockAdmins.EXPECT().GetByUsername(gomock.Any(), "root").Return(root, nil)

		token, err := svc.AdminLogin(context.Background(), "root", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}

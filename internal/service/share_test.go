package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"proofflow-backend/internal/access"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/security"
)

const testTokenSecret = "0123456789abcdef0123456789abcdef"

type shareFixture struct {
	now        time.Time
	albums     *MockAlbumRepo
	subfolders *MockSubfolderRepo
	shares     *MockShareRepo
	images     *MockImageRepo
	hasher     security.PasswordHasher
	tokens     security.ShareTokenCodec
	authz      *access.Authorizer
	svc        ShareService
}

func newShareFixture() *shareFixture {
	f := &shareFixture{
		now:        time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		albums:     new(MockAlbumRepo),
		subfolders: new(MockSubfolderRepo),
		shares:     new(MockShareRepo),
		images:     new(MockImageRepo),
		hasher:     security.NewPasswordHasher(bcrypt.MinCost),
	}
	clock := func() time.Time { return f.now }
	f.tokens = security.NewShareTokenCodec(testTokenSecret, security.WithClock(clock))
	f.authz = access.NewAuthorizer(f.shares, f.tokens, access.WithClock(clock))
	f.svc = NewShareService(ShareServiceConfig{
		AlbumRepo:     f.albums,
		SubfolderRepo: f.subfolders,
		ShareRepo:     f.shares,
		ImageRepo:     f.images,
		Authorizer:    f.authz,
		Hasher:        f.hasher,
		Tokens:        f.tokens,
		ShareURL:      func(id string) string { return "https://proofs.example.com/s/" + id },
		Now:           clock,
	})
	return f
}

// storedShare returns a share protected by password that expires at expiresAt
// (nil for never).
func (f *shareFixture) storedShare(t *testing.T, password string, expiresAt *time.Time) *domain.ShareRecord {
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	share := &domain.ShareRecord{
		ID:           "sh1",
		AlbumID:      "A",
		PasswordHash: hash,
		CreatedAt:    f.now.Add(-time.Hour),
		ExpiresAt:    expiresAt,
	}
	f.shares.On("GetByID", mock.Anything, "sh1").Return(share, nil)
	return share
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestShareService_CreateShare(t *testing.T) {
	ctx := context.Background()

	t.Run("Album-wide share with expiry", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(&domain.Album{ID: "A"}, nil)
		f.shares.On("Create", ctx, mock.AnythingOfType("*domain.ShareRecord")).Return(nil)

		share, url, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", Password: "hunter2", ExpiresInHours: intPtr(72)})
		require.NoError(t, err)

		assert.NotEmpty(t, share.ID)
		assert.Equal(t, "https://proofs.example.com/s/"+share.ID, url)
		assert.Nil(t, share.SubfolderID)
		require.NotNil(t, share.ExpiresAt)
		assert.True(t, f.now.Add(72*time.Hour).Equal(*share.ExpiresAt))
		assert.NotEqual(t, "hunter2", share.PasswordHash)
		assert.True(t, f.hasher.Verify("hunter2", share.PasswordHash))
	})

	t.Run("Never expires", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(&domain.Album{ID: "A"}, nil)
		f.shares.On("Create", ctx, mock.Anything).Return(nil)

		share, _, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", Password: "hunter2"})
		require.NoError(t, err)
		assert.Nil(t, share.ExpiresAt)
	})

	t.Run("Subfolder share", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(&domain.Album{ID: "A"}, nil)
		f.subfolders.On("GetByID", ctx, "S1").Return(&domain.Subfolder{ID: "S1", AlbumID: "A"}, nil)
		f.shares.On("Create", ctx, mock.Anything).Return(nil)

		share, _, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", SubfolderID: strPtr("S1"), Password: "hunter2"})
		require.NoError(t, err)
		require.NotNil(t, share.SubfolderID)
		assert.Equal(t, "S1", *share.SubfolderID)
		assert.Equal(t, domain.ShareModeSubfolder, share.Scope().Mode)
	})

	t.Run("Blank subfolder means the whole album", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(&domain.Album{ID: "A"}, nil)
		f.shares.On("Create", ctx, mock.Anything).Return(nil)

		share, _, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", SubfolderID: strPtr(" "), Password: "hunter2"})
		require.NoError(t, err)
		assert.Nil(t, share.SubfolderID)
		f.subfolders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Subfolder of another album", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(&domain.Album{ID: "A"}, nil)
		f.subfolders.On("GetByID", ctx, "S9").Return(&domain.Subfolder{ID: "S9", AlbumID: "B"}, nil)

		_, _, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", SubfolderID: strPtr("S9"), Password: "hunter2"})
		assert.EqualError(t, err, "Subfolder not found")
		f.shares.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Album not found", func(t *testing.T) {
		f := newShareFixture()
		f.albums.On("GetByID", ctx, "A").Return(nil, domain.ErrNotFound)

		_, _, err := f.svc.CreateShare(ctx, CreateShareInput{AlbumID: "A", Password: "hunter2"})
		assert.EqualError(t, err, "Album not found")
	})

	t.Run("Invalid input", func(t *testing.T) {
		cases := []struct {
			name  string
			in    CreateShareInput
			error string
		}{
			{"Short password", CreateShareInput{AlbumID: "A", Password: "abc"}, "Password must be between 4 and 200 characters"},
			{"Long password", CreateShareInput{AlbumID: "A", Password: strings.Repeat("a", 201)}, "Password must be between 4 and 200 characters"},
			{"Password over 72 bytes", CreateShareInput{AlbumID: "A", Password: strings.Repeat("é", 40)}, "Password must be at most 72 bytes"},
			{"Zero hours", CreateShareInput{AlbumID: "A", Password: "hunter2", ExpiresInHours: intPtr(0)}, "expires_in_hours must be between 1 and 720"},
			{"Too many hours", CreateShareInput{AlbumID: "A", Password: "hunter2", ExpiresInHours: intPtr(721)}, "expires_in_hours must be between 1 and 720"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newShareFixture()
				_, _, err := f.svc.CreateShare(ctx, tc.in)
				assert.EqualError(t, err, tc.error)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				f.albums.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestShareService_GetShareMeta(t *testing.T) {
	ctx := context.Background()

	t.Run("Live share", func(t *testing.T) {
		f := newShareFixture()
		f.storedShare(t, "hunter2", nil)

		scope, err := f.svc.GetShareMeta(ctx, "sh1")
		require.NoError(t, err)
		assert.Equal(t, domain.ShareModeAlbum, scope.Mode)
		assert.Equal(t, "All photos", scope.Title)
	})

	t.Run("Expired share", func(t *testing.T) {
		f := newShareFixture()
		f.storedShare(t, "hunter2", timePtr(f.now))

		_, err := f.svc.GetShareMeta(ctx, "sh1")
		assert.Same(t, errShareNotFound, err)
	})

	t.Run("Store unavailable", func(t *testing.T) {
		f := newShareFixture()
		f.shares.On("GetByID", mock.Anything, "sh1").Return(nil, domain.ErrUnavailable)

		_, err := f.svc.GetShareMeta(ctx, "sh1")
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})
}

func TestShareService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Share without expiry gets the maximum session", func(t *testing.T) {
		f := newShareFixture()
		f.storedShare(t, "hunter2", nil)

		token, expiresAt, err := f.svc.Authenticate(ctx, "sh1", "hunter2")
		require.NoError(t, err)
		assert.True(t, f.now.Add(MaxSessionTTL).Equal(expiresAt))

		session, err := f.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "sh1", session.ShareID)
	})

	t.Run("Session is capped by the share expiry", func(t *testing.T) {
		f := newShareFixture()
		expiry := f.now.Add(time.Hour)
		f.storedShare(t, "hunter2", &expiry)

		_, expiresAt, err := f.svc.Authenticate(ctx, "sh1", "hunter2")
		require.NoError(t, err)
		assert.True(t, expiry.Equal(expiresAt))
	})

	t.Run("Failures are indistinguishable", func(t *testing.T) {
		wrong := newShareFixture()
		wrong.storedShare(t, "hunter2", nil)
		_, _, errWrong := wrong.svc.Authenticate(ctx, "sh1", "hunter3")

		missing := newShareFixture()
		missing.shares.On("GetByID", mock.Anything, "sh1").Return(nil, domain.ErrNotFound)
		_, _, errMissing := missing.svc.Authenticate(ctx, "sh1", "hunter2")

		expired := newShareFixture()
		expired.storedShare(t, "hunter2", timePtr(expired.now.Add(-time.Second)))
		_, _, errExpired := expired.svc.Authenticate(ctx, "sh1", "hunter2")

		for _, err := range []error{errWrong, errMissing, errExpired} {
			assert.Same(t, errShareNotFound, err)
		}
	})
}

// A token never outlives its share, whatever the share's remaining lifetime.
func TestShareService_TokenNeverOutlivesShare(t *testing.T) {
	ctx := context.Background()
	img := &domain.Image{ID: "i1", AlbumID: "A", SubfolderID: "S1"}

	remaining := []time.Duration{
		1500 * time.Millisecond,
		time.Minute + 250*time.Millisecond,
		time.Hour,
		11*time.Hour + 59*time.Minute,
		13 * time.Hour,
		500 * time.Hour,
	}
	for _, r := range remaining {
		t.Run(r.String(), func(t *testing.T) {
			f := newShareFixture()
			issuedAt := f.now
			expiry := issuedAt.Add(r)
			f.storedShare(t, "hunter2", &expiry)

			token, expiresAt, err := f.svc.Authenticate(ctx, "sh1", "hunter2")
			require.NoError(t, err)

			limit := issuedAt.Add(MaxSessionTTL)
			if expiry.Before(limit) {
				limit = expiry
			}
			assert.False(t, expiresAt.After(limit), "token expiry %s after %s", expiresAt, limit)

			cred := security.BearerCredential(token)
			_, err = f.authz.AuthorizeImage(ctx, img, cred)
			require.NoError(t, err)

			f.now = expiry
			_, err = f.authz.AuthorizeImage(ctx, img, cred)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestShareService_ListShareImages(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	images := []domain.Image{{ID: "i1", AlbumID: "A", SubfolderID: "S1"}}

	f.images.On("List", ctx, "A", "").Return(images, nil).Once()
	got, err := f.svc.ListShareImages(ctx, &domain.ShareRecord{ID: "sh1", AlbumID: "A"})
	require.NoError(t, err)
	assert.Equal(t, images, got)

	f.images.On("List", ctx, "A", "S1").Return(images, nil).Once()
	_, err = f.svc.ListShareImages(ctx, &domain.ShareRecord{ID: "sh1", AlbumID: "A", SubfolderID: strPtr("S1")})
	require.NoError(t, err)

	f.images.AssertExpectations(t)
}

func timePtr(t time.Time) *time.Time { return &t }

package profile

import (
	"testing"
	"time"

	profileRepo "memoria/database/repository/profile"
	userRepo "memoria/database/repository/user"
	"memoria/models"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) *DefaultProfileService {
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &DefaultProfileService{
		UserRepo:    userRepo.NewLocalUserRepo(db),
		ProfileRepo: profileRepo.NewLocalProfileRepo(db),
	}
}

func registerPatient(t *testing.T, svc *DefaultProfileService) *AuthResponse {
	resp, err := svc.Register(RegistrationRequest{
		Name:     "Alice Carter",
		Email:    "alice@example.com",
		Password: "correct-horse",
		Role:     models.RolePatient,
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_PatientGetsProfileAndToken(t *testing.T) {
	svc := setupTestService(t)

	resp := registerPatient(t, svc)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	require.NotNil(t, resp.Profile)
	assert.Equal(t, resp.ID, resp.Profile.UserID)
	assert.Equal(t, "Alice", resp.Profile.IdentityProfile.PreferredName)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	registerPatient(t, svc)

	_, err := svc.Register(RegistrationRequest{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "something-else",
		Role:     models.RolePatient,
	})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestRegister_EmailCaseInsensitive(t *testing.T) {
	svc := setupTestService(t)

	resp, err := svc.Register(RegistrationRequest{
		Name:     "Alice Carter",
		Email:    "  Alice@Example.COM ",
		Password: "correct-horse",
		Role:     models.RolePatient,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email, "addresses are stored normalized")

	// A duplicate differing only in case is still a duplicate.
	_, err = svc.Register(RegistrationRequest{
		Name:     "Other Alice",
		Email:    "ALICE@example.com",
		Password: "something-else",
		Role:     models.RolePatient,
	})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestAuthenticate(t *testing.T) {
	svc := setupTestService(t)
	registerPatient(t, svc)

	resp, err := svc.Authenticate("alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.Profile, "patient login loads the profile")

	// Login is case-insensitive on the address.
	mixed, err := svc.Authenticate("Alice@EXAMPLE.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, mixed.Token)

	_, err = svc.Authenticate("alice@example.com", "wrongpassword")
	assert.Error(t, err)

	// Unknown email fails with the exact same error as a bad password.
	_, badEmailErr := svc.Authenticate("nobody@example.com", "correct-horse")
	require.Error(t, badEmailErr)
	assert.EqualError(t, badEmailErr, err.Error())
}

func TestDemoAccounts(t *testing.T) {
	svc := setupTestService(t)
	require.NoError(t, svc.SeedDemoAccounts())
	require.NoError(t, svc.SeedDemoAccounts(), "seeding is idempotent")

	resp, err := svc.Authenticate("margaret@example.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, DemoPatientID, resp.ID)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Maggie", resp.Profile.IdentityProfile.PreferredName)
	require.NotNil(t, resp.Profile.DiagnosisDate)
	assert.True(t, resp.Profile.DiagnosisDate.Equal(time.Date(2022, 6, 10, 0, 0, 0, 0, time.UTC)),
		"timestamps survive the local store exactly")

	caregiver, err := svc.Authenticate("sarah@example.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaregiver, caregiver.User.Role)
	assert.Nil(t, caregiver.Profile, "caregivers have no patient profile")
}

func TestGetProfile_MaterializesDefaultOnce(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	first, err := svc.GetProfile(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "You are safe. You are at home. You are loved.", first.IdentityProfile.Affirmation)
	assert.Equal(t, "not_diagnosed", first.DementiaStage)
	assert.NotNil(t, first.Medications, "collections start empty, not nil")

	second, err := svc.GetProfile(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat reads return the same stored profile")
}

func TestUpdateProfile_SparsePatch(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	stage := "early"
	updated, err := svc.UpdateProfile(resp.ID, models.ProfileUpdateRequest{DementiaStage: &stage})
	require.NoError(t, err)
	assert.Equal(t, "early", updated.DementiaStage)
	assert.Equal(t, "Alice", updated.IdentityProfile.PreferredName, "untouched fields survive")

	// Reload from storage: the returned value reflects persisted state.
	reloaded, err := svc.GetProfile(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "early", reloaded.DementiaStage)
}

func TestUpdateProfile_NestedObjectsReplaceWholesale(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	loc := models.LocationInfo{CurrentLocation: "Home", City: "Durham"}
	updated, err := svc.UpdateProfile(resp.ID, models.ProfileUpdateRequest{LocationInfo: &loc})
	require.NoError(t, err)
	require.NotNil(t, updated.LocationInfo)
	assert.Equal(t, "Durham", updated.LocationInfo.City)
	assert.Empty(t, updated.LocationInfo.SafePlaces,
		"nested patch replaces the whole object, no deep merge with prior safe places")
}

func TestUpdateProfile_EmptyPatchRejected(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	_, err := svc.UpdateProfile(resp.ID, models.ProfileUpdateRequest{})
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateUser_SparsePatch(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	name := "Alice B. Carter"
	updated, err := svc.UpdateUser(models.UserUpdateRequest{ID: &resp.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email, "untouched fields survive")
}

func TestRecoverSession(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	recovered, err := svc.RecoverSession(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, recovered.ID)
	require.NotNil(t, recovered.Profile)

	_, err = svc.RecoverSession("not-a-token")
	assert.Error(t, err)
}

func TestResetPassword_NeverRevealsAccounts(t *testing.T) {
	svc := setupTestService(t)
	registerPatient(t, svc)

	assert.NoError(t, svc.ResetPassword("alice@example.com"))
	assert.NoError(t, svc.ResetPassword("nobody@example.com"))
}

func TestDeleteUser_RemovesProfileToo(t *testing.T) {
	svc := setupTestService(t)
	resp := registerPatient(t, svc)

	require.NoError(t, svc.DeleteUser(resp.ID))

	usr, err := svc.UserRepo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, usr)

	prof, err := svc.ProfileRepo.GetByUserID(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, prof)
}

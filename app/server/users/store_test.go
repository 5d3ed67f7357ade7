package users

import (
	"campus-portal/app/server/constants"
	"campus-portal/app/server/models"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Department{},
		&models.StudentRecord{},
		&models.InstructorRecord{},
	))
	return db
}

func seedTestRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, name := range constants.SeedRoles {
		require.NoError(t, db.Create(&models.Role{Name: name}).Error)
	}
}

func TestGormStoreCreate(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	user := &models.User{Email: "a@b.com", Name: "Alice"}
	require.NoError(t, store.Create(ctx, user, "Aa1aaaaa"))

	found, err := store.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", found.Username) // 用户名始终等于邮箱
	assert.NotEqual(t, "Aa1aaaaa", found.Password)
	assert.NotEmpty(t, found.Password)

	byID, err := store.FindByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, found.Email, byID.Email)
}

func TestGormStoreFindNotFound(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	_, err := store.FindByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreCreateDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.User{Email: "a@b.com"}, "Aa1aaaaa"))

	err := store.Create(ctx, &models.User{Email: "a@b.com"}, "Aa1aaaaa")
	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Contains(t, policyErr.Messages[0], "already taken")

	var counter int64
	require.NoError(t, db.Model(&models.User{}).Count(&counter).Error)
	assert.EqualValues(t, 1, counter)
}

func TestGormStoreCreatePasswordPolicy(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
		wantMsgs int
	}{
		{"too short and weak", "aa", 3}, // 长度、大写、数字
		{"no uppercase", "alllower1", 1},
		{"no digit", "NoDigitsHere", 1},
		{"no lowercase", "ALLUPPER11", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Create(ctx, &models.User{Email: "p@b.com"}, tt.password)
			var policyErr *PolicyError
			require.ErrorAs(t, err, &policyErr)
			assert.Len(t, policyErr.Messages, tt.wantMsgs)
		})
	}

	// 校验失败时不应有任何写入
	var counter int64
	require.NoError(t, db.Model(&models.User{}).Count(&counter).Error)
	assert.EqualValues(t, 0, counter)
}

func TestGormStoreCreateInvalidEmail(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)

	err := store.Create(context.Background(), &models.User{Email: "not-an-email"}, "Aa1aaaaa")
	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Contains(t, policyErr.Messages[0], "Email is not valid")
}

func TestGormStoreCheckPassword(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	user := &models.User{Email: "a@b.com"}
	require.NoError(t, store.Create(ctx, user, "Aa1aaaaa"))

	match, err := store.CheckPassword(ctx, user, "Aa1aaaaa")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = store.CheckPassword(ctx, user, "Wrong1password")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestGormStoreAddToRoleProvisionsVariant(t *testing.T) {
	db := openTestDB(t)
	seedTestRoles(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	student := &models.User{Email: "s@b.com"}
	require.NoError(t, store.Create(ctx, student, "Aa1aaaaa"))
	require.NoError(t, store.AddToRole(ctx, student, constants.RoleStudent))

	found, err := store.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, IsInRole(found, constants.RoleStudent))
	assert.False(t, IsInRole(found, constants.RoleInstructor))

	// 学生成员必须持有学生侧的扩展记录，且没有讲师侧的
	var studentRecords, instructorRecords int64
	require.NoError(t, db.Model(&models.StudentRecord{}).Where("user_id = ?", student.ID).Count(&studentRecords).Error)
	require.NoError(t, db.Model(&models.InstructorRecord{}).Where("user_id = ?", student.ID).Count(&instructorRecords).Error)
	assert.EqualValues(t, 1, studentRecords)
	assert.EqualValues(t, 0, instructorRecords)

	// 重复添加保持幂等
	require.NoError(t, store.AddToRole(ctx, student, constants.RoleStudent))
	require.NoError(t, db.Model(&models.StudentRecord{}).Where("user_id = ?", student.ID).Count(&studentRecords).Error)
	assert.EqualValues(t, 1, studentRecords)
}

func TestGormStoreProfileVariants(t *testing.T) {
	db := openTestDB(t)
	seedTestRoles(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	student := &models.User{Email: "s@b.com"}
	require.NoError(t, store.Create(ctx, student, "Aa1aaaaa"))
	require.NoError(t, store.AddToRole(ctx, student, constants.RoleStudent))
	require.NoError(t, db.Model(&models.StudentRecord{}).Where("user_id = ?", student.ID).Update("grade", 87).Error)

	instructor := &models.User{Email: "i@b.com"}
	require.NoError(t, store.Create(ctx, instructor, "Aa1aaaaa"))
	require.NoError(t, store.AddToRole(ctx, instructor, constants.RoleInstructor))
	require.NoError(t, db.Model(&models.InstructorRecord{}).Where("user_id = ?", instructor.ID).Update("salary", 4200.5).Error)

	admin := &models.User{Email: "admin@b.com"}
	require.NoError(t, store.Create(ctx, admin, "Aa1aaaaa"))
	require.NoError(t, store.AddToRole(ctx, admin, constants.RoleAdmin))

	foundStudent, err := store.FindByID(ctx, student.ID)
	require.NoError(t, err)
	profile, err := store.Profile(ctx, foundStudent)
	require.NoError(t, err)
	require.IsType(t, StudentProfile{}, profile)
	assert.Equal(t, 87, profile.(StudentProfile).Grade)

	foundInstructor, err := store.FindByID(ctx, instructor.ID)
	require.NoError(t, err)
	profile, err = store.Profile(ctx, foundInstructor)
	require.NoError(t, err)
	require.IsType(t, InstructorProfile{}, profile)
	assert.Equal(t, 4200.5, profile.(InstructorProfile).Salary)

	foundAdmin, err := store.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	profile, err = store.Profile(ctx, foundAdmin)
	require.NoError(t, err)
	assert.IsType(t, BasicProfile{}, profile)
}

func TestGormStoreUpdateKeepsEmail(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	user := &models.User{Email: "a@b.com", Name: "Alice"}
	require.NoError(t, store.Create(ctx, user, "Aa1aaaaa"))

	user.Name = "Alice Smith"
	user.Address = "42 Main St"
	user.PhoneNumber = "12345678"
	require.NoError(t, store.Update(ctx, user))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", found.Email)
	assert.Equal(t, "Alice Smith", found.Name)
	assert.Equal(t, "42 Main St", found.Address)
	assert.Equal(t, "12345678", found.PhoneNumber)
}

func TestGormRoleStore(t *testing.T) {
	db := openTestDB(t)
	store := NewGormRoleStore(db)
	ctx := context.Background()

	exists, err := store.Exists(ctx, constants.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Create(ctx, constants.RoleAdmin))

	exists, err = store.Exists(ctx, constants.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, exists)
}

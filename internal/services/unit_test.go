package services

import (
	"errors"
	"testing"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection, or every pooled conn gets its own empty :memory: db.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Unit{}, &models.User{}, &models.UnitAssignment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUnitService_Create_AnyAuthenticatedUser(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Username: "sgt.miller", Role: "soldier"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewUnitService(db)
	actor := hierarchy.Actor{ID: user.ID, Role: "soldier"}

	unit, err := svc.Create(actor, &CreateUnitRequest{
		Name:      "2-87 Infantry Battalion",
		UnitLevel: "battalion",
	})
	if err != nil {
		t.Fatalf("Create by ordinary soldier error = %v, expected nil", err)
	}
	if unit.ReferralCode == "" {
		t.Error("created unit should carry a referral code")
	}
	if unit.CreatedBy != user.ID {
		t.Errorf("CreatedBy = %d, expected %d", unit.CreatedBy, user.ID)
	}
}

func TestUnitService_Create_UnauthenticatedDenied(t *testing.T) {
	db := openTestDB(t)
	svc := NewUnitService(db)

	_, err := svc.Create(hierarchy.Actor{}, &CreateUnitRequest{
		Name:      "Alpha Company",
		UnitLevel: "company",
	})
	if !errors.Is(err, hierarchy.ErrAccessDenied) {
		t.Errorf("Create by zero actor error = %v, expected ErrAccessDenied", err)
	}
}

func TestUnitService_Create_LevelOrderingStillGuarded(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Username: "sgt.miller", Role: "soldier"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewUnitService(db)
	actor := hierarchy.Actor{ID: user.ID, Role: "soldier"}

	squad, err := svc.Create(actor, &CreateUnitRequest{Name: "1st Squad", UnitLevel: "squad"})
	if err != nil {
		t.Fatalf("create squad: %v", err)
	}

	_, err = svc.Create(actor, &CreateUnitRequest{
		Name:      "Bravo Company",
		UnitLevel: "company",
		ParentID:  &squad.ID,
	})
	if !errors.Is(err, hierarchy.ErrInvalidLevelOrdering) {
		t.Errorf("company under squad error = %v, expected ErrInvalidLevelOrdering", err)
	}
}

func TestAssignmentService_Apply_CannotEndSolePrimary(t *testing.T) {
	db := openTestDB(t)

	unit := models.Unit{Name: "Alpha Company", UnitLevel: "company", ReferralCode: "code-a"}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	user := models.User{Username: "sgt.miller", Role: "soldier", UnitID: &unit.ID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	assignment := models.UnitAssignment{
		UserID:         user.ID,
		UnitID:         unit.ID,
		AssignmentType: string(hierarchy.AssignmentPrimary),
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	svc := NewAssignmentService(db)
	admin := hierarchy.Actor{ID: 99, Admin: true}

	_, err := svc.Apply(admin, user.ID, &ApplyAssignmentsRequest{End: []uint{assignment.ID}})
	if !errors.Is(err, hierarchy.ErrNoPrimaryAssignment) {
		t.Errorf("ending sole primary error = %v, expected ErrNoPrimaryAssignment", err)
	}

	var still models.UnitAssignment
	if err := db.First(&still, assignment.ID).Error; err != nil {
		t.Fatalf("reload assignment: %v", err)
	}
	if still.EndDate != nil {
		t.Error("rejected batch must not have ended the assignment")
	}
}

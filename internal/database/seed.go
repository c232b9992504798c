package database

import (
	"errors"
	"log"
	"os"
	"strings"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"gorm.io/gorm"
)

// Seed inserts the baseline records the system cannot run without: the full
// permission catalogue, the super-admin ADMIN role and the admin user from
// ADMIN_EMAIL / ADMIN_PASSWORD. Safe to run on every boot.
func (d *DBinstanceStruct) Seed() error {
	if err := d.seedPermissions(); err != nil {
		return err
	}
	if err := d.seedAdminRole(); err != nil {
		return err
	}
	return d.seedAdminUser()
}

func (d *DBinstanceStruct) seedPermissions() error {
	for _, key := range access.AllPermissionKeys {
		var existing model.Permission
		err := d.Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		perm := model.Permission{
			Key:         key,
			Description: strings.ReplaceAll(strings.ToLower(key), "_", " "),
		}
		if err := d.Create(&perm).Error; err != nil && !IsUniqueViolation(err) {
			return err
		}
	}
	return nil
}

func (d *DBinstanceStruct) seedAdminRole() error {
	var existing model.Role
	err := d.Where("name = ?", access.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	role := model.Role{
		Name:         access.RoleAdmin,
		IsSuperAdmin: true,
	}
	if err := d.Create(&role).Error; err != nil && !IsUniqueViolation(err) {
		return err
	}
	log.Println("ADMIN role seeded")
	return nil
}

func (d *DBinstanceStruct) seedAdminUser() error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("Admin email or password not set, skipping admin creation")
		return nil
	}

	var count int64
	if err := d.Model(&model.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole model.Role
	if err := d.Where("name = ?", access.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hashedPassword, err := utilities.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		FullName: "Super Admin",
		Email:    adminEmail,
		Password: hashedPassword,
		RoleID:   adminRole.ID,
	}
	if err := d.Create(&admin).Error; err != nil && !IsUniqueViolation(err) {
		return err
	}
	log.Println("Admin user created")
	return nil
}

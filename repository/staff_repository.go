package repository

import (
	"kiosk/entity"

	"gorm.io/gorm"
)

type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) FindByUsername(username string) (*entity.Staff, error) {
	var staff entity.Staff
	if err := r.DB.Where("username = ?", username).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) CreateCall(call *entity.StaffCall) error {
	return r.DB.Create(call).Error
}

// PendingCalls lists unresolved calls, oldest first.
func (r *StaffRepository) PendingCalls() ([]entity.StaffCall, error) {
	var calls []entity.StaffCall
	err := r.DB.Where("resolved = ?", false).Order("id").Find(&calls).Error
	return calls, err
}

func (r *StaffRepository) ResolveCall(id uint) error {
	return r.DB.Model(&entity.StaffCall{}).Where("id = ?", id).
		Update("resolved", true).Error
}

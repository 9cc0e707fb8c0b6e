package models

import (
	"errors"

	"gorm.io/gorm"
)

// AdminLogin is the seed account that must always exist.
const AdminLogin = "admin"

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned when no user matches a login and
// password pair.
var ErrInvalidCredentials = errors.New("invalid login or password")

// ErrAdminProtected is returned when a delete targets the seed admin
// account.
var ErrAdminProtected = errors.New("the admin account cannot be deleted")

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{
		db: db,
	}
}

// List returns all users without their passwords, in insertion order.
func (r *UsersRepository) List() ([]User, error) {
	var users []User
	if err := r.db.Select("id", "login", "role", "full_name").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UsersRepository) GetByID(id uint) (*User, error) {
	var user User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByCredentials matches a login and password exactly against the
// stored strings.
func (r *UsersRepository) FindByCredentials(login, password string) (*User, error) {
	var user User
	if err := r.db.Where("login = ? AND password = ?", login, password).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *UsersRepository) Update(user *User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user. The seed admin account is refused regardless
// of who asks.
func (r *UsersRepository) Delete(id uint) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if user.Login == AdminLogin {
		return ErrAdminProtected
	}
	return r.db.Delete(&User{}, id).Error
}

package repositories

import (
	"errors"
	"fmt"

	"yatube/app/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenMySQL connects to MySQL through gorm and migrates the schema.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// NewGormStore wires the gorm repositories over db. Closing the store closes
// the connection pool.
func NewGormStore(db *gorm.DB) *Store {
	return NewStore(
		&GormUserRepository{DB: db},
		&GormGroupRepository{DB: db},
		&GormPostRepository{DB: db},
		func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	)
}

// translateError maps gorm errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type GormUserRepository struct {
	DB *gorm.DB
}

func (r *GormUserRepository) Create(user *models.User) error {
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return translateError(r.DB.Create(user).Error)
}

func (r *GormUserRepository) GetByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

type GormGroupRepository struct {
	DB *gorm.DB
}

func (r *GormGroupRepository) Create(group *models.Group) error {
	group.BeforeCreate()
	if err := group.Validate(); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}
	return translateError(r.DB.Create(group).Error)
}

func (r *GormGroupRepository) GetByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.DB.First(&group, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &group, nil
}

func (r *GormGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translateError(err)
	}
	return &group, nil
}

func (r *GormGroupRepository) List() ([]*models.Group, error) {
	groups := []*models.Group{}
	err := r.DB.Order("title ASC, id ASC").Find(&groups).Error
	return groups, translateError(err)
}

type GormPostRepository struct {
	DB *gorm.DB
}

func (r *GormPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return translateError(r.DB.Omit(clause.Associations).Create(post).Error)
}

func (r *GormPostRepository) GetByID(id uint64) (*models.Post, error) {
	var post models.Post
	if err := r.DB.First(&post, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (r *GormPostRepository) filtered(filter PostFilter) *gorm.DB {
	q := r.DB.Model(&models.Post{})
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != 0 {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	return q
}

// List uses the (created_at DESC, id DESC) order so ties stay deterministic.
func (r *GormPostRepository) List(filter PostFilter) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.filtered(filter).Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, translateError(err)
}

func (r *GormPostRepository) Count(filter PostFilter) (int, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return int(count), translateError(err)
}

// Update writes only the mutable columns.
func (r *GormPostRepository) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, post.ID).Error; err != nil {
			return translateError(err)
		}
		err := tx.Model(&existing).
			Select("text", "group_id").
			Updates(map[string]interface{}{"text": post.Text, "group_id": post.GroupID}).Error
		return translateError(err)
	})
}

package database

import "vitrine/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Subscription{},
		&models.ProjectCategory{},
		&models.Technology{},
		&models.Project{},
		&models.Skill{},
		&models.ContactMessage{},
		&models.Visitor{},
		&models.VisitorSession{},
		&models.PageView{},
		&models.Event{},
	}
}

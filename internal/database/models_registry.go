package database

import "ripple/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Friendship{},
		&models.Story{},
	}
}

// AdminTable describes one entity exposed through the admin CRUD surface.
// New and NewSlice return pointers suitable for gorm binding.
type AdminTable struct {
	Name     string
	New      func() interface{}
	NewSlice func() interface{}
}

// AdminTables returns the tabular-CRUD registry for the admin surface, in
// display order.
func AdminTables() []AdminTable {
	return []AdminTable{
		{
			Name:     "users",
			New:      func() interface{} { return &models.User{} },
			NewSlice: func() interface{} { return &[]models.User{} },
		},
		{
			Name:     "posts",
			New:      func() interface{} { return &models.Post{} },
			NewSlice: func() interface{} { return &[]models.Post{} },
		},
		{
			Name:     "comments",
			New:      func() interface{} { return &models.Comment{} },
			NewSlice: func() interface{} { return &[]models.Comment{} },
		},
		{
			Name:     "friendships",
			New:      func() interface{} { return &models.Friendship{} },
			NewSlice: func() interface{} { return &[]models.Friendship{} },
		},
		{
			Name:     "stories",
			New:      func() interface{} { return &models.Story{} },
			NewSlice: func() interface{} { return &[]models.Story{} },
		},
	}
}

// LookupAdminTable returns the registry entry for the given table name.
func LookupAdminTable(name string) (AdminTable, bool) {
	for _, t := range AdminTables() {
		if t.Name == name {
			return t, true
		}
	}
	return AdminTable{}, false
}

package contenttype

// Model is any persisted record that can be the target of a generic
// reference. TableName matches gorm's Tabler so the same method drives
// both migrations and reference resolution.
type Model interface {
	TableName() string
	PrimaryKey() int64
}

// Named lets a model pick the name it is registered under. Models without
// it are registered under their table name.
type Named interface {
	ModelName() string
}

// ContentType is the persisted identity of a registered model. Generic
// references store its ID next to the target's primary key.
type ContentType struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Model    string `json:"model" gorm:"column:model;size:100;not null;uniqueIndex"`
	Table    string `json:"table" gorm:"column:db_table;size:128;not null"`
	PKColumn string `json:"pk_column" gorm:"column:pk_column;size:64;not null;default:id"`
}

func (ContentType) TableName() string {
	return "content_types"
}

func (ct ContentType) sameTarget(table, pk string) bool {
	return ct.Table == table && ct.PKColumn == pk
}

// NameOf returns the registry name of m.
func NameOf(m Model) string {
	if n, ok := m.(Named); ok {
		return n.ModelName()
	}
	return m.TableName()
}

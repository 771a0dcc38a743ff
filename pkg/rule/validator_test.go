package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/artvault/pkg/rule"
)

// submissionMeta 用于测试 ValidateStruct 的投稿元数据结构.
type submissionMeta struct {
	Title  string `rule:"required"`
	Author string `rule:"required"`
	Status string `rule:"oneof=pending approved rejected"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效结构体
	valid := submissionMeta{Title: "sunset", Author: "alice", Status: "pending"}

	err := rule.ValidateStruct(valid)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 无效结构体：缺少 Title
	missingTitle := submissionMeta{Title: "", Author: "alice", Status: "pending"}

	err = rule.ValidateStruct(missingTitle)
	if err == nil {
		t.Error("Expected error for invalid struct (missing title), got nil")
	}

	// 无效结构体：未知状态
	badStatus := submissionMeta{Title: "sunset", Author: "alice", Status: "archived"}

	err = rule.ValidateStruct(badStatus)
	if err == nil {
		t.Error("Expected error for invalid struct (unknown status), got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效状态
	err := rule.ValidateVar("approved", "oneof=pending approved rejected")
	if err != nil {
		t.Errorf("Expected no error for valid status, got %v", err)
	}

	// 无效状态
	err = rule.ValidateVar("deleted", "oneof=pending approved rejected")
	if err == nil {
		t.Error("Expected error for invalid status, got nil")
	}

	// 有效大小
	err = rule.ValidateVar(1024, "gte=1")
	if err != nil {
		t.Errorf("Expected no error for valid size, got %v", err)
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：检查标签不含逗号（入库前应已拆分）
	err := rule.RegisterValidation("single_tag", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range str {
			if r == ',' {
				return false
			}
		}

		return true
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	err = rule.ValidateVar("landscape", "single_tag")
	if err != nil {
		t.Errorf("Expected no error for single tag, got %v", err)
	}

	err = rule.ValidateVar("a,b", "single_tag")
	if err == nil {
		t.Error("Expected error for comma in tag, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("moderation_status", "oneof=pending approved rejected")

	if err := rule.ValidateVar("rejected", "moderation_status"); err != nil {
		t.Errorf("Expected no error for aliased rule, got %v", err)
	}

	if err := rule.ValidateVar("draft", "moderation_status"); err == nil {
		t.Error("Expected error for aliased rule with invalid value, got nil")
	}
}

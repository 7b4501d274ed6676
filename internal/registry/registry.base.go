// Package registry cung cấp implementation của registry pattern với generic type.
// Package này cho phép quản lý các singleton instances trong ứng dụng một cách thread-safe.
package registry

import (
	"fmt"
	"sync"

	"cafe_pos/internal/common"
)

// Registry là một thread-safe generic registry pattern implementation.
// Type parameter T cho phép registry quản lý bất kỳ loại object nào.
// Thread-safety được đảm bảo thông qua sync.RWMutex.
type Registry[T any] struct {
	items map[string]T // Map lưu trữ các items theo key
	mu    sync.RWMutex // Mutex để đảm bảo thread-safety
}

// NewRegistry tạo và trả về một registry mới.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item mới vào registry.
// Nếu item với name đã tồn tại, nó sẽ bị ghi đè.
//
// Returns:
//   - isNew: true nếu là item mới, false nếu ghi đè item cũ
//   - err: Trả về lỗi nếu name rỗng
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get trả về item theo name.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate trả về item theo name, tạo mới bằng creator nếu chưa tồn tại.
// Creator chỉ được gọi một lần cho mỗi name kể cả khi gọi đồng thời.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}

	r.mu.RLock()
	if item, exists := r.items[name]; exists {
		r.mu.RUnlock()
		return item, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Kiểm tra lại sau khi giữ write lock — goroutine khác có thể đã tạo
	if item, exists := r.items[name]; exists {
		return item, nil
	}

	item, err = creator()
	if err != nil {
		return zero, err
	}
	r.items[name] = item
	return item, nil
}

// Clear xóa một item khỏi registry, gọi cleanup trước khi xóa nếu được cung cấp.
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (deleted bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[name]
	if !exists {
		return false, nil
	}
	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, err
		}
	}
	delete(r.items, name)
	return true, nil
}

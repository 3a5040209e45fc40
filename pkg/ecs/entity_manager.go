package ecs

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 表示无效实体（ID从1开始分配，0保留）
const InvalidEntity EntityID = 0

// Store 按稳定ID管理同一类实体的集合
//
// 与通用的组件映射不同，每种实体使用独立的 Store，
// 由 WorldState 直接持有，遍历顺序与创建顺序一致。
type Store[T any] struct {
	nextID uint64
	// 实体映射: EntityID -> 实体数据
	items map[EntityID]*T
	// 创建顺序（遍历时保证稳定）
	order []EntityID
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewStore 创建一个新的 Store 实例
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		nextID:            1, // ID从1开始,0保留为无效ID
		items:             make(map[EntityID]*T),
		order:             make([]EntityID, 0),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 插入实体数据并返回唯一ID
func (s *Store[T]) CreateEntity(item *T) EntityID {
	id := EntityID(s.nextID)
	s.nextID++
	s.items[id] = item
	s.order = append(s.order, id)
	return id
}

// Get 获取实体数据
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Has 检查实体是否存在
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.items[id]
	return ok
}

// Len 返回当前存活的实体数量
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Remove 立即删除实体
// 返回 false 表示实体不存在
func (s *Store[T]) Remove(id EntityID) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// DestroyEntity 标记实体待删除(不立即删除)
func (s *Store[T]) DestroyEntity(id EntityID) {
	s.entitiesToDestroy = append(s.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回实际删除的数量（重复标记或已删除的实体不计入）
func (s *Store[T]) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range s.entitiesToDestroy {
		if s.Remove(id) {
			removed++
		}
	}
	s.entitiesToDestroy = s.entitiesToDestroy[:0] // 清空切片
	return removed
}

// IDs 返回所有实体ID的快照（按创建顺序）
// 返回的切片可以在遍历期间安全地删除实体
func (s *Store[T]) IDs() []EntityID {
	result := make([]EntityID, len(s.order))
	copy(result, s.order)
	return result
}

// Each 按创建顺序遍历所有实体
func (s *Store[T]) Each(fn func(id EntityID, item *T)) {
	for _, id := range s.order {
		fn(id, s.items[id])
	}
}

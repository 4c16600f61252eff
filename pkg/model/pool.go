package model

// Pool 员工集合，按加入顺序保持稳定遍历序，保证生成结果可复现
type Pool struct {
	catalog   *Catalog
	rules     Rules
	employees map[string]*Employee
	order     []string
}

// NewPool 创建空员工池
func NewPool(catalog *Catalog, rules Rules) *Pool {
	return &Pool{
		catalog:   catalog,
		rules:     rules,
		employees: make(map[string]*Employee),
	}
}

// Get 按姓名获取员工，不存在时创建
func (p *Pool) Get(name string) *Employee {
	if e, ok := p.employees[name]; ok {
		return e
	}
	e := NewEmployee(name, p.catalog, p.rules)
	p.employees[name] = e
	p.order = append(p.order, name)
	return e
}

// Lookup 按姓名查找员工，不自动创建
func (p *Pool) Lookup(name string) (*Employee, bool) {
	e, ok := p.employees[name]
	return e, ok
}

// Add 加入已构造的员工，同名时覆盖但保留原有顺序
func (p *Pool) Add(e *Employee) {
	if _, ok := p.employees[e.Name()]; !ok {
		p.order = append(p.order, e.Name())
	}
	p.employees[e.Name()] = e
}

// Remove 按姓名移除员工
func (p *Pool) Remove(name string) {
	if _, ok := p.employees[name]; !ok {
		return
	}
	delete(p.employees, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Len 返回员工数量
func (p *Pool) Len() int { return len(p.order) }

// Names 返回全部姓名（加入顺序）
func (p *Pool) Names() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// Employees 返回全部员工（加入顺序）
func (p *Pool) Employees() []*Employee {
	result := make([]*Employee, 0, len(p.order))
	for _, name := range p.order {
		result = append(result, p.employees[name])
	}
	return result
}

// LoadAvailability 用提交记录重建全池空闲时间：
// 先清空所有员工的空闲，再逐条应用；提交中出现的新姓名自动入池。
func (p *Pool) LoadAvailability(submissions []*AvailabilitySubmission) {
	for _, e := range p.Employees() {
		e.ClearAvailability()
	}
	for _, sub := range submissions {
		e := p.Get(sub.Employee)
		e.SetAllAvailability(sub.AvailableShifts)
	}
}

// ClearAllAssignments 清空全池分配
func (p *Pool) ClearAllAssignments() {
	for _, e := range p.Employees() {
		e.ClearAssignments()
	}
}

package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
)

// ── 切换出勤的状态错误 ──

var (
	ErrFutureDate     = errors.New("不能修改未来日期的出勤")
	ErrToggleInFlight = errors.New("该日期的出勤正在更新中，请稍候")
	ErrDayNotInGrid   = errors.New("该日期不在出勤表中")
	ErrNoPendingCell  = errors.New("该日期没有待确认的更新")
	ErrNotCommitted   = errors.New("该日期的更新尚未确认")
	ErrTogglePersist  = errors.New("保存出勤失败，已恢复原状态")
)

// CellState 单元格乐观更新状态
type CellState int

const (
	CellIdle CellState = iota
	CellPending
	CellCommitted
	CellRolledBack
)

func (s CellState) String() string {
	switch s {
	case CellIdle:
		return "idle"
	case CellPending:
		return "pending"
	case CellCommitted:
		return "committed"
	case CellRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

type cell struct {
	verdict Verdict
	prior   Verdict
	state   CellState
}

// Grid 单个学生当前打开的出勤网格
// pending 状态即该日期的建议锁：同一日期的第二次切换直接拒绝，不排队
type Grid struct {
	mu        sync.Mutex
	studentID string
	today     time.Time
	order     []string
	cells     map[string]*cell
}

// NewGrid 由已判定的结论构建网格
func NewGrid(studentID string, verdicts []Verdict, today time.Time) *Grid {
	g := &Grid{
		studentID: studentID,
		today:     calendar.DateOf(today, nil),
		order:     make([]string, 0, len(verdicts)),
		cells:     make(map[string]*cell, len(verdicts)),
	}
	for _, v := range verdicts {
		k := calendar.Key(v.Date)
		if _, dup := g.cells[k]; dup {
			continue
		}
		g.order = append(g.order, k)
		g.cells[k] = &cell{verdict: v}
	}
	return g
}

// StudentID 网格所属学生
func (g *Grid) StudentID() string { return g.studentID }

// Verdicts 按日期升序返回当前结论快照
func (g *Grid) Verdicts() []Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Verdict, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.cells[k].verdict)
	}
	return out
}

// Verdict 查询某天结论
func (g *Grid) Verdict(date time.Time) (Verdict, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(calendar.DateOf(date, nil))]
	if !ok {
		return Verdict{}, false
	}
	return c.verdict, true
}

// State 查询某天单元格状态
func (g *Grid) State(date time.Time) CellState {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(calendar.DateOf(date, nil))]
	if !ok {
		return CellIdle
	}
	return c.state
}

// BeginToggle 乐观地将某天结论取反并标记为 pending
func (g *Grid) BeginToggle(date time.Time) (Verdict, error) {
	day := calendar.DateOf(date, nil)
	if day.After(g.today) {
		return Verdict{}, ErrFutureDate
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(day)]
	if !ok {
		return Verdict{}, ErrDayNotInGrid
	}
	if c.state == CellPending {
		return Verdict{}, ErrToggleInFlight
	}

	c.prior = c.verdict
	c.verdict.IsPresent = !c.prior.IsPresent
	c.verdict.Source = SourceManual
	c.state = CellPending
	return c.verdict, nil
}

// Commit 确认 pending 的更新
func (g *Grid) Commit(date time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(calendar.DateOf(date, nil))]
	if !ok || c.state != CellPending {
		return ErrNoPendingCell
	}
	c.state = CellCommitted
	return nil
}

// Settle 用落库后的结论覆盖已确认单元格的出勤与来源
// 例如已有成绩标记的记录被切换后，重新加载时来源仍为 grade-based
func (g *Grid) Settle(v Verdict) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(calendar.DateOf(v.Date, nil))]
	if !ok || c.state != CellCommitted {
		return ErrNotCommitted
	}
	c.verdict.IsPresent = v.IsPresent
	c.verdict.Source = v.Source
	return nil
}

// Rollback 恢复切换前的完整结论（包括来源标记）
func (g *Grid) Rollback(date time.Time) (Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[calendar.Key(calendar.DateOf(date, nil))]
	if !ok || c.state != CellPending {
		return Verdict{}, ErrNoPendingCell
	}
	c.verdict = c.prior
	c.state = CellRolledBack
	return c.verdict, nil
}

// PersistFunc 持久化一次切换结果
type PersistFunc func(ctx context.Context, v Verdict) error

// Toggle 完整的乐观更新流程：取反 → 持久化 → 确认或回滚
// 持久化失败时返回原结论和包装了 ErrTogglePersist 的错误
func (g *Grid) Toggle(ctx context.Context, date time.Time, persist PersistFunc) (Verdict, error) {
	next, err := g.BeginToggle(date)
	if err != nil {
		return Verdict{}, err
	}

	if err := persist(ctx, next); err != nil {
		prior, rbErr := g.Rollback(date)
		if rbErr != nil {
			return Verdict{}, rbErr
		}
		return prior, fmt.Errorf("%w: %w", ErrTogglePersist, err)
	}

	if err := g.Commit(date); err != nil {
		return Verdict{}, err
	}
	return next, nil
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("该班级暂无在读学生")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 单元格符号
const (
	markPresent = "✓"
	markAbsent  = "✗"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出班级整学期出勤表为 Excel
	ExportAttendance(ctx context.Context, semesterID, classID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	cal    CalendarService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cal CalendarService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cal: cal, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance — 导出出勤表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：标题（学期名称）
//   - 第 2 行：学生 | 各工作日（日期 + 星期） | 出勤 | 缺勤 | 缺勤率
//   - 第 3 行起：每个学生一行，✓ 出勤 / ✗ 缺勤 / 空白表示无记录或未来日期

func (s *exportService) ExportAttendance(ctx context.Context, semesterID, classID string) (*bytes.Buffer, string, error) {
	// 1. 学期
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 学生、记录、成绩
	var (
		students []model.Student
		records  []model.AttendanceRecord
		grades   []model.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.repo.Student.ListByClass(gctx, classID)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.repo.Attendance.ListByClass(gctx, semesterID, classID)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.repo.Grade.ListByClass(gctx, semesterID, classID, time.Time{}, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("加载导出数据失败", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	core := make([]attendance.Record, 0, len(records))
	for i := range records {
		core = append(core, records[i].Core())
	}
	gradeTimes := make(map[string][]time.Time)
	for i := range grades {
		gradeTimes[grades[i].StudentID] = append(gradeTimes[grades[i].StudentID],
			calendar.DateOf(grades[i].At(), s.cal.Location()))
	}

	// 3. 列：所有学生网格日期的并集，保证周末补课也有列
	today := s.cal.Today()
	grids := make([][]attendance.Verdict, len(students))
	var allDays []time.Time
	for i, st := range students {
		grids[i] = attendance.ResolveSemester(semester.Calendar(), st.StudentID, core, gradeTimes[st.StudentID], today)
		for _, v := range grids[i] {
			allDays = append(allDays, v.Date)
		}
	}
	days := calendar.MergeDates(calendar.GenerateWorkingDays(semester.Calendar()), allDays)
	column := make(map[string]int, len(days))
	for i, d := range days {
		column[calendar.Key(d)] = i
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "出勤表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: boolPtr(true)})

	lastCol := 1 + len(days) + 3
	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, colName(1), colName(len(days)), 12)
	f.SetColWidth(sheetName, colName(len(days)+1), colName(lastCol-1), 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	centerStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - سجل الحضور", semester.Name))
	f.MergeCell(sheetName, "A1", cell(colName(lastCol-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "الطالب")
	for i, d := range days {
		dayName, _ := s.cal.Label(d)
		f.SetCellValue(sheetName, cell(colName(1+i), row), calendar.Key(d)+"\n"+dayName)
	}
	f.SetCellValue(sheetName, cell(colName(len(days)+1), row), "حضور")
	f.SetCellValue(sheetName, cell(colName(len(days)+2), row), "غياب")
	f.SetCellValue(sheetName, cell(colName(len(days)+3), row), "نسبة الغياب")
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(lastCol-1), row), headerStyle)

	// 数据行
	for i, st := range students {
		row = 3 + i
		f.SetCellValue(sheetName, cell("A", row), st.Name)
		for _, v := range grids[i] {
			col, ok := column[calendar.Key(v.Date)]
			if !ok || v.IsUpcoming {
				continue
			}
			switch {
			case v.IsPresent:
				f.SetCellValue(sheetName, cell(colName(1+col), row), markPresent)
			case v.Recorded():
				f.SetCellValue(sheetName, cell(colName(1+col), row), markAbsent)
			}
		}

		summary := attendance.Summarize(grids[i])
		f.SetCellValue(sheetName, cell(colName(len(days)+1), row), summary.PresentDays)
		f.SetCellValue(sheetName, cell(colName(len(days)+2), row), summary.AbsentDays)
		f.SetCellValue(sheetName, cell(colName(len(days)+3), row), fmt.Sprintf("%d%%", summary.AbsencePercentage))
		f.SetCellStyle(sheetName, cell(colName(1), row), cell(colName(lastCol-1), row), centerStyle)
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", semester.Name, calendar.Key(today))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func boolPtr(b bool) *bool { return &b }

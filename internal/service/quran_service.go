package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/internal/core/quran"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
)

// ── 背诵模块业务错误 ──

var (
	ErrSurahNotFound   = errors.New("章节不存在")
	ErrStudentNotFound = errors.New("学生不存在")
	ErrAyahOutOfRange  = errors.New("节号超出该章范围")
)

// QuranService 章节查询与背诵进度
type QuranService interface {
	ListSurahs() []quran.Surah
	// GetSurah 按章节号或阿拉伯语名称查找
	GetSurah(key string) (*quran.Surah, error)
	// GetProgress classID 为空时使用学生最近更新的目标
	GetProgress(ctx context.Context, studentID, classID string) (*dto.ProgressResponse, error)
	SetGoal(ctx context.Context, studentID string, req *dto.SetGoalRequest) (*dto.ProgressResponse, error)
	SetPosition(ctx context.Context, studentID string, req *dto.SetPositionRequest) (*dto.ProgressResponse, error)
}

type quranService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewQuranService 创建 QuranService 实例
func NewQuranService(repo *repository.Repository, logger *zap.Logger) QuranService {
	return &quranService{repo: repo, logger: logger}
}

func (s *quranService) ListSurahs() []quran.Surah {
	return quran.All()
}

func (s *quranService) GetSurah(key string) (*quran.Surah, error) {
	if id, ok := parseSurahID(key); ok {
		if surah, found := quran.ByID(id); found {
			return &surah, nil
		}
		return nil, ErrSurahNotFound
	}
	if surah, found := quran.ByName(key); found {
		return &surah, nil
	}
	return nil, ErrSurahNotFound
}

// ────────────────────── GetProgress ──────────────────────

func (s *quranService) GetProgress(ctx context.Context, studentID, classID string) (*dto.ProgressResponse, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var goal *model.StudentGoal
	if classID != "" {
		goal, err = s.repo.Goal.Get(ctx, studentID, classID)
	} else {
		goal, err = s.repo.Goal.GetLatest(ctx, studentID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询背诵目标失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return buildProgress(student, goal, classID), nil
}

// ────────────────────── SetGoal ──────────────────────

func (s *quranService) SetGoal(ctx context.Context, studentID string, req *dto.SetGoalRequest) (*dto.ProgressResponse, error) {
	target, ok := quran.ByID(req.TargetSurahID)
	if !ok {
		return nil, ErrSurahNotFound
	}
	if req.TargetAyahNumber < 1 || req.TargetAyahNumber > target.AyahCount {
		return nil, ErrAyahOutOfRange
	}

	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	goal := &model.StudentGoal{
		StudentID:        studentID,
		ClassID:          req.ClassID,
		TargetSurahID:    req.TargetSurahID,
		TargetAyahNumber: req.TargetAyahNumber,
	}
	if err := s.repo.Goal.Replace(ctx, goal); err != nil {
		s.logger.Error("保存背诵目标失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return buildProgress(student, goal, req.ClassID), nil
}

// ────────────────────── SetPosition ──────────────────────

func (s *quranService) SetPosition(ctx context.Context, studentID string, req *dto.SetPositionRequest) (*dto.ProgressResponse, error) {
	surah, ok := quran.ByID(req.SurahID)
	if !ok {
		return nil, ErrSurahNotFound
	}
	if req.AyahNumber < 0 || req.AyahNumber > surah.AyahCount {
		return nil, ErrAyahOutOfRange
	}

	if err := s.repo.Student.UpdatePosition(ctx, studentID, req.SurahID, req.AyahNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("更新背诵位置失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return s.GetProgress(ctx, studentID, "")
}

// ── 内部辅助方法 ──

func (s *quranService) loadStudent(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func buildProgress(student *model.Student, goal *model.StudentGoal, classID string) *dto.ProgressResponse {
	pos := student.Position()
	resp := &dto.ProgressResponse{
		StudentID: student.StudentID,
		ClassID:   classID,
		Position:  pos,
		Totals:    quran.ComputeMemorized(pos),
	}
	if pos != nil {
		if surah, ok := quran.ByID(pos.SurahID); ok {
			resp.SurahName = surah.Name
		}
	}
	if goal == nil {
		return resp
	}

	g := goal.Goal()
	verses := quran.ComputeGoalProgress(pos, g)
	pages := quran.ComputeGoalPages(pos, g)
	resp.ClassID = goal.ClassID
	resp.Goal = &g
	resp.GoalProgress = &verses
	resp.PageProgress = &pages
	if surah, ok := quran.ByID(g.TargetSurahID); ok {
		resp.GoalSurah = surah.Name
	}
	return resp
}

// parseSurahID 纯数字视为章节号
func parseSurahID(key string) (int, bool) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return id, true
}

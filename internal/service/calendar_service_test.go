package service

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/core/hijri"
)

func TestCalendarService_TodayUsesSchoolTimezone(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*3600)
	now := time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC) // 利雅得已是 15 日

	cal, err := NewCalendarService(&config.CalendarConfig{HijriMode: hijri.ModeArithmetic}, Deps{
		Location: riyadh,
		Now:      func() time.Time { return now },
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCalendarService 应成功: %v", err)
	}

	if got := cal.Today().Format("2006-01-02"); got != "2026-10-15" {
		t.Errorf("期望 Today=2026-10-15，实际=%s", got)
	}
	if cal.Location() != riyadh {
		t.Error("Location 应返回配置的时区")
	}
}

func TestCalendarService_Hijri(t *testing.T) {
	cal := newTestCalendar(testToday)

	resp, err := cal.Hijri("")
	if err != nil {
		t.Fatalf("Hijri 应成功: %v", err)
	}
	if resp.Date != "2026-10-14" {
		t.Errorf("缺省日期应为今天，实际=%s", resp.Date)
	}
	if resp.Hijri.Year != 1448 {
		t.Errorf("期望回历年 1448，实际=%d", resp.Hijri.Year)
	}
	if resp.Formatted.DayName != "الأربعاء" {
		t.Errorf("期望 DayName=الأربعاء，实际=%s", resp.Formatted.DayName)
	}
	if resp.Formatted.Gregorian != "14 أكتوبر 2026م" {
		t.Errorf("公历展示不符合预期: %s", resp.Formatted.Gregorian)
	}
	if resp.Short != "30/ربي/1448هـ" {
		t.Errorf("回历简写不符合预期: %s", resp.Short)
	}

	if _, err := cal.Hijri("2026-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

func TestCalendarService_UnknownHijriMode(t *testing.T) {
	_, err := NewCalendarService(&config.CalendarConfig{HijriMode: "lunar"}, Deps{Location: time.UTC}, zap.NewNop())
	if err == nil {
		t.Error("未知回历模式应返回错误")
	}
}

func TestCalendarService_Label(t *testing.T) {
	cal := newTestCalendar(testToday)

	day, short := cal.Label(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	if day != "الجمعة" {
		t.Errorf("期望 الجمعة，实际=%s", day)
	}
	if short == "" {
		t.Error("回历简写不应为空")
	}
}

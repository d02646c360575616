package models

import (
	"errors"
	"net/http"
	"testing"
)

func TestDefaultsFor_Locale(t *testing.T) {
	cases := []struct {
		locale string
		want   string
	}{
		{"", "未知作者"},
		{"zh", "未知作者"},
		{"zh-CN", "未知作者"},
		{"en", "Unknown author"},
		{"en-US", "Unknown author"},
		{"not a tag", "未知作者"},
	}
	for _, c := range cases {
		got := DefaultsFor(c.locale).AuthorName
		if got != c.want {
			t.Fatalf("locale=%q 期望 %q，实际 %q", c.locale, c.want, got)
		}
	}
}

func TestParseLocale_RejectsUnsupported(t *testing.T) {
	if _, ok := ParseLocale("xx-invalid-!!"); ok {
		t.Fatalf("非法语言标签应返回 ok=false")
	}
	if _, ok := ParseLocale("en"); !ok {
		t.Fatalf("en 应被接受")
	}
}

func TestNewLevelRecord_AllDefaults(t *testing.T) {
	rec := DefaultsFor("zh").NewLevelRecord("L1")
	if rec.LevelID != "L1" {
		t.Fatalf("levelId 应回显输入，实际 %q", rec.LevelID)
	}
	if rec.SortMin != SentinelPlayers || rec.SortMax != SentinelPlayers {
		t.Fatalf("人数默认应为 999，实际 %d/%d", rec.SortMin, rec.SortMax)
	}
	if rec.PlayersStr != "N/A" || rec.HotScore != "0" || rec.GoodRate != "-" {
		t.Fatalf("默认值不符：%+v", rec)
	}
	if rec.Type != "未知" || rec.Category != "未知" || rec.LevelName != "未知关卡" {
		t.Fatalf("默认文案不符：%+v", rec)
	}
}

func TestAsAppError(t *testing.T) {
	orig := NewInvalidDataError("数据结构异常", nil)
	wrapped := errors.Join(errors.New("ctx"), orig)
	if got := AsAppError(wrapped); got != orig {
		t.Fatalf("应从错误链中取出原始 AppError")
	}

	plain := AsAppError(errors.New("boom"))
	if plain.Code != http.StatusInternalServerError || plain.Kind != KindServer {
		t.Fatalf("普通错误应包装为500，实际 %+v", plain)
	}
}

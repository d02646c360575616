package models

import (
	"strings"

	"golang.org/x/text/language"
)

// LevelRecord 是 /guid 对外承诺的唯一数据结构，与上游变体无关。
type LevelRecord struct {
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	LevelName    string `json:"levelName"`
	LevelID      string `json:"levelId"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	PlayersStr   string `json:"playersStr"`
	HotScore     string `json:"hotScore"`
	GoodRate     string `json:"goodRate"`
	SortMin      int    `json:"sortMin"`
	SortMax      int    `json:"sortMax"`
	CoverURL     string `json:"coverUrl"`
}

// 与语言无关的默认值
const (
	DefaultAuthorAvatar = ""
	DefaultPlayersStr   = "N/A"
	DefaultHotScore     = "0"
	DefaultGoodRate     = "-"
	DefaultCoverURL     = ""

	// SentinelPlayers 表示人数未知或无法解析
	SentinelPlayers = 999
)

// Defaults 是随部署语言变化的默认文案
type Defaults struct {
	AuthorName string
	LevelName  string
	Type       string
	Category   string

	// 米游社 play_cate 的两种取值对应的展示文案
	CategoryLongTerm string
	CategoryCasual   string
}

var (
	zhDefaults = Defaults{
		AuthorName:       "未知作者",
		LevelName:        "未知关卡",
		Type:             "未知",
		Category:         "未知",
		CategoryLongTerm: "长线游玩",
		CategoryCasual:   "轻量趣味",
	}
	enDefaults = Defaults{
		AuthorName:       "Unknown author",
		LevelName:        "Unknown level",
		Type:             "Unknown",
		Category:         "Unknown",
		CategoryLongTerm: "Long-term play",
		CategoryCasual:   "Casual fun",
	}
)

// 第一个为默认语言
var supportedLocales = []language.Tag{language.Chinese, language.English}

var localeMatcher = language.NewMatcher(supportedLocales)

// ParseLocale 解析语言标签，只接受受支持的语言
func ParseLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return supportedLocales[0], true
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supportedLocales[idx], true
}

// DefaultsFor 返回语言对应的默认文案；无法识别时回退中文
func DefaultsFor(locale string) Defaults {
	tag, ok := ParseLocale(locale)
	if ok && tag == language.English {
		return enDefaults
	}
	return zhDefaults
}

// NewLevelRecord 返回所有字段都已填充默认值的记录
func (d Defaults) NewLevelRecord(levelID string) LevelRecord {
	return LevelRecord{
		AuthorName:   d.AuthorName,
		AuthorAvatar: DefaultAuthorAvatar,
		LevelName:    d.LevelName,
		LevelID:      levelID,
		Type:         d.Type,
		Category:     d.Category,
		PlayersStr:   DefaultPlayersStr,
		HotScore:     DefaultHotScore,
		GoodRate:     DefaultGoodRate,
		SortMin:      SentinelPlayers,
		SortMax:      SentinelPlayers,
		CoverURL:     DefaultCoverURL,
	}
}

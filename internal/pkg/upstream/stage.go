package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/httpx"
)

const (
	// DefaultStageHost 是 stage 接口的默认地址
	DefaultStageHost = "https://octavia.kj415j45.space"
	// DefaultRegion 官服
	DefaultRegion = "cn_gf01"
)

// maxResponseBytes 限制上游 JSON 的读取量
const maxResponseBytes = 4 << 20

// StageAdapter 对接 GET {host}/api/stage?region=..&id=..
//
// 响应形如 {author:{game:{name,avatar}}, level:{id, meta:{...}}}。
type StageAdapter struct {
	Host     string
	Region   string
	Client   *http.Client
	Defaults models.Defaults
}

func (StageAdapter) Name() string { return "stage" }

func (a StageAdapter) host() string {
	h := strings.TrimSpace(a.Host)
	if h == "" {
		h = DefaultStageHost
	}
	return strings.TrimRight(h, "/")
}

func (a StageAdapter) region() string {
	if r := strings.TrimSpace(a.Region); r != "" {
		return r
	}
	return DefaultRegion
}

// Fetch 请求 stage 接口并返回原始响应体
func (a StageAdapter) Fetch(ctx context.Context, id string) ([]byte, error) {
	if a.Client == nil {
		return nil, errors.New("http client 不能为空")
	}
	u := a.host() + "/api/stage?region=" + url.QueryEscape(a.region()) + "&id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpx.SimpleUserAgent)
	return doRequest(a.Client, req)
}

// Normalize 把 stage 响应整形为 LevelRecord
func (a StageAdapter) Normalize(id string, body []byte) (models.LevelRecord, error) {
	if !gjson.ValidBytes(body) {
		return models.LevelRecord{}, ErrMalformed
	}
	root := gjson.ParseBytes(body)
	if !truthy(root) || !truthy(root.Get("author")) || !truthy(root.Get("level")) {
		return models.LevelRecord{}, ErrInvalidData
	}

	d := a.Defaults
	author := root.Get("author.game")
	meta := root.Get("level.meta")
	cover := meta.Get("cover")
	players := meta.Get("players")

	rec := d.NewLevelRecord(id)
	rec.AuthorName = stringOr(author.Get("name"), d.AuthorName)
	rec.AuthorAvatar = stringOr(author.Get("avatar"), models.DefaultAuthorAvatar)
	rec.LevelName = stringOr(meta.Get("name"), d.LevelName)
	rec.LevelID = stringOr(root.Get("level.id"), id)
	rec.Type = stringOr(meta.Get("type"), d.Type)
	rec.Category = stringOr(meta.Get("category"), d.Category)
	rec.PlayersStr = stringOr(players.Get("str"), models.DefaultPlayersStr)
	rec.HotScore = stringOr(meta.Get("hotScore"), models.DefaultHotScore)
	rec.GoodRate = stringOr(meta.Get("goodRate"), models.DefaultGoodRate)
	rec.CoverURL = firstTruthy(models.DefaultCoverURL,
		firstElem(cover.Get("images")),
		cover.Get("videoCover"),
	)
	rec.SortMin, rec.SortMax = stagePlayerBounds(players, rec.PlayersStr)
	return rec, nil
}

// stagePlayerBounds 决定排序用的人数区间：
// 有 min 时直接解析 min/max；否则解析 "2-4" 形式的 str；都不可用时为 999。
func stagePlayerBounds(players gjson.Result, playersStr string) (int, int) {
	lo, hi := models.SentinelPlayers, models.SentinelPlayers

	if minVal := players.Get("min"); minVal.Exists() {
		if n, ok := parseInt(minVal); ok {
			lo = n
		}
		if n, ok := parseInt(players.Get("max")); ok {
			hi = n
		}
		return lo, hi
	}

	if playersStr == models.DefaultPlayersStr {
		return lo, hi
	}
	parts := strings.Split(playersStr, "-")
	first, ok := parseIntPrefix(parts[0])
	if !ok {
		return lo, hi
	}
	lo, hi = first, first
	if len(parts) > 1 {
		if n, ok := parseIntPrefix(parts[1]); ok {
			hi = n
		} else {
			hi = models.SentinelPlayers
		}
	}
	return lo, hi
}

// doRequest 执行请求；非 2xx 返回 *StatusError，成功返回受限读取的响应体
func doRequest(c *http.Client, req *http.Request) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

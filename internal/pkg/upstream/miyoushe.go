package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/httpx"
)

const (
	// DefaultMiyousheHost 是米游社社区接口的默认地址
	DefaultMiyousheHost = "https://bbs-api.miyoushe.com"
	// MiyousheReferer 米游社接口要求的 Referer
	MiyousheReferer = "https://www.miyoushe.com/"

	miyoushePath = "/community/ugc_community/web/api/level/full/info"

	playCateLongTerm = "LEVEL_CATE_LONG_TERM"

	levelInfoPath = "data.resp_map.level_detail.data.level_detail_response.level_info"
	developerPath = "data.resp_map.developer_info.data.developer_news_response"
)

type aggRequest struct {
	APIName string `json:"api_name"`
}

type fullInfoRequest struct {
	Region     string       `json:"region"`
	LevelID    string       `json:"level_id"`
	AggReqList []aggRequest `json:"agg_req_list"`
}

// MiyousheAdapter 对接米游社 level/full/info 聚合接口（POST JSON）。
type MiyousheAdapter struct {
	Host     string
	Region   string
	Client   *http.Client
	Defaults models.Defaults
}

func (MiyousheAdapter) Name() string { return "miyoushe" }

func (a MiyousheAdapter) host() string {
	h := strings.TrimSpace(a.Host)
	if h == "" {
		h = DefaultMiyousheHost
	}
	return strings.TrimRight(h, "/")
}

func (a MiyousheAdapter) region() string {
	if r := strings.TrimSpace(a.Region); r != "" {
		return r
	}
	return DefaultRegion
}

// Fetch 发送聚合请求并返回原始响应体（业务码在 Normalize 中检查）
func (a MiyousheAdapter) Fetch(ctx context.Context, id string) ([]byte, error) {
	if a.Client == nil {
		return nil, errors.New("http client 不能为空")
	}
	payload, err := json.Marshal(fullInfoRequest{
		Region:  a.region(),
		LevelID: id,
		AggReqList: []aggRequest{
			{APIName: "level_detail"},
			{APIName: "developer_info"},
			{APIName: "config"},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host()+miyoushePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpx.BrowserUserAgent)
	req.Header.Set("Referer", MiyousheReferer)
	req.Header.Set("Content-Type", "application/json")
	return doRequest(a.Client, req)
}

// Normalize 检查 retcode 与必需结构，然后整形为 LevelRecord
func (a MiyousheAdapter) Normalize(id string, body []byte) (models.LevelRecord, error) {
	if !gjson.ValidBytes(body) {
		return models.LevelRecord{}, ErrMalformed
	}
	root := gjson.ParseBytes(body)

	retcode := root.Get("retcode")
	if retcode.Type != gjson.Number || retcode.Num != 0 {
		return models.LevelRecord{}, &BusinessError{
			Code:    retcode.Int(),
			Message: root.Get("message").String(),
		}
	}

	info := root.Get(levelInfoPath)
	developer := root.Get(developerPath)
	if !truthy(info) || !truthy(developer) {
		return models.LevelRecord{}, ErrInvalidData
	}

	d := a.Defaults
	dev := developer.Get("developer")

	rec := d.NewLevelRecord(id)
	rec.AuthorName = stringOr(dev.Get("game_nickname"), d.AuthorName)
	rec.AuthorAvatar = stringOr(dev.Get("game_avatar"), models.DefaultAuthorAvatar)
	rec.LevelName = stringOr(info.Get("level_name"), d.LevelName)
	rec.Type = stringOr(info.Get("play_type"), d.Type)
	if info.Get("play_cate").String() == playCateLongTerm {
		rec.Category = d.CategoryLongTerm
	} else {
		rec.Category = d.CategoryCasual
	}
	rec.PlayersStr = stringOr(info.Get("show_limit_play_num_str"), models.DefaultPlayersStr)
	rec.HotScore = stringOr(info.Get("hot_score"), models.DefaultHotScore)
	rec.GoodRate = stringOr(info.Get("good_rate"), models.DefaultGoodRate)
	rec.SortMin = intOr(info.Get("limit_play_num_min"), models.SentinelPlayers)
	rec.SortMax = intOr(info.Get("limit_play_num_max"), models.SentinelPlayers)
	rec.CoverURL = firstTruthy(models.DefaultCoverURL,
		info.Get("cover_img.url"),
		firstElem(info.Get("images")).Get("url"),
		info.Get("video_info.video_cover"),
	)
	return rec, nil
}

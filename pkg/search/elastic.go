package search

import (
	"context"
	"strconv"

	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

// 一次搜索最多取回的视频ID数，分页在数据库侧完成
const maxHits = 1000

type videoDocument struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VideoIndex 视频标题/简介的全文索引，文档ID就是视频ID
type VideoIndex struct {
	client *elastic.Client
	index  string
}

func NewClient(url string) (*elastic.Client, error) {
	return elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
}

func NewVideoIndex(client *elastic.Client, index string) *VideoIndex {
	return &VideoIndex{client: client, index: index}
}

// Search multi_match 模糊匹配，只返回命中的视频ID，不取 _source
func (i *VideoIndex) Search(ctx context.Context, query string, fields []string, fuzziness int) ([]uint64, error) {
	q := elastic.NewMultiMatchQuery(query, fields...).Fuzziness(strconv.Itoa(fuzziness))
	res, err := i.client.Search().
		Index(i.index).
		Query(q).
		FetchSource(false).
		Size(maxHits).
		Do(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "search videos")
	}

	ids := make([]uint64, 0)
	if res.Hits == nil {
		return ids, nil
	}
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseUint(hit.Id, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (i *VideoIndex) Index(ctx context.Context, id uint64, title, description string) error {
	_, err := i.client.Index().
		Index(i.index).
		Id(strconv.FormatUint(id, 10)).
		BodyJson(videoDocument{Title: title, Description: description}).
		Do(ctx)
	return errors.WithMessage(err, "index video")
}

// Remove 文档本来就不存在不算错误
func (i *VideoIndex) Remove(ctx context.Context, id uint64) error {
	_, err := i.client.Delete().
		Index(i.index).
		Id(strconv.FormatUint(id, 10)).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return errors.WithMessage(err, "remove video")
}

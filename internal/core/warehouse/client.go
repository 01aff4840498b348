package warehouse

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"meal-planner-api/internal/pkg/common"
)

// Client BigQuery 資料倉儲存取層
type Client struct {
	bq            *bigquery.Client
	projectID     string
	dataset       string
	defaultUserID string
}

// New 建立倉儲存取層
func New(bq *bigquery.Client, projectID, dataset, defaultUserID string) *Client {
	return &Client{bq: bq, projectID: projectID, dataset: dataset, defaultUserID: defaultUserID}
}

// MenuID 以生成時刻產生唯一的菜單編號
func MenuID(now time.Time) string {
	return "menu_" + now.UTC().Format("20060102_150405")
}

func (c *Client) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", c.projectID, c.dataset, name)
}

// DemographicSnapshot 讀取最新一批人口統計資料（以 created_at 最大值為快照）
func (c *Client) DemographicSnapshot(ctx context.Context) ([]map[string]any, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE created_at = (SELECT MAX(created_at) FROM %s)`,
		c.table("demographics"), c.table("demographics"))
	rows, err := c.queryRows(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("查詢人口統計資料失敗", err)
	}
	return rows, nil
}

// TableRows 讀取指定資料表的全部資料列
func (c *Client) TableRows(ctx context.Context, tableName string) ([]map[string]any, error) {
	rows, err := c.queryRows(ctx, fmt.Sprintf(`SELECT * FROM %s`, c.table(tableName)))
	if err != nil {
		return nil, common.NewPersistenceError(fmt.Sprintf("查詢 %s 失敗", tableName), err)
	}
	return rows, nil
}

func (c *Client) queryRows(ctx context.Context, query string) ([]map[string]any, error) {
	it, err := c.bq.Query(query).Read(ctx)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		converted := make(map[string]any, len(row))
		for k, v := range row {
			converted[k] = v
		}
		rows = append(rows, converted)
	}
	return rows, nil
}

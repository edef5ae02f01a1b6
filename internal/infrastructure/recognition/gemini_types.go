package recognition

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/spf13/cast"
	"google.golang.org/genai"
)

// priceSheetPrompt tells the model how to read a sheet. The category names
// are the shop's labels; rows are mapped back to category codes on decode.
const priceSheetPrompt = `你是一个专业的店面会计助手。请识别这张图片中的商品信息。
图片可能包含：价格表、手写进货单、或者带有价格标签的商品实拍。

输出要求：
1. 必须返回合法的 JSON 数组。
2. 字段映射：
   - name: 商品名称
   - caseCost: 整箱进价 (数字)
   - caseQuantity: 每箱数量 (数字)
   - unitCost: 单件成本 (数字)
   - caseWholesalePrice: 整箱批发价 (数字)
   - wholesalePrice: 单件批发价 (数字)
   - retailPrice: 单件零售价/售价 (数字)
   - category: 类别 (必须是 "烟花", "鞭炮", "小烟花", "其他" 之一)
   - remarks: 备注信息
3. 逻辑计算：如果图片里只有整箱价格和数量，请帮我算出 unitCost。
4. 即使图片模糊，也请尽力猜测最可能的文字，不要留空 name。`

var numericFields = []string{
	pricebook.FieldCaseCost,
	pricebook.FieldCaseQuantity,
	pricebook.FieldUnitCost,
	pricebook.FieldCaseWholesalePrice,
	pricebook.FieldWholesalePrice,
	pricebook.FieldRetailPrice,
}

// priceSheetSchema constrains the model output to an array of rows.
func priceSheetSchema() *genai.Schema {
	props := map[string]*genai.Schema{
		pricebook.FieldName:     {Type: genai.TypeString},
		pricebook.FieldCategory: {Type: genai.TypeString, Enum: []string{"烟花", "鞭炮", "小烟花", "其他"}},
		pricebook.FieldRemarks:  {Type: genai.TypeString},
	}
	for _, f := range numericFields {
		props[f] = &genai.Schema{Type: genai.TypeNumber}
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   []string{pricebook.FieldName},
		},
	}
}

// decodeRows parses a JSON array of loosely typed rows. Values that do not
// parse as numbers leave the field unset, unknown categories become the
// default one and unknown keys are ignored. An empty array yields no rows
// and no error.
func decodeRows(text string) ([]pricebook.CandidateRow, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var raw []map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of objects: %w", err)
	}

	rows := make([]pricebook.CandidateRow, 0, len(raw))
	for _, item := range raw {
		var row pricebook.CandidateRow
		row.Name = strings.TrimSpace(cast.ToString(item[pricebook.FieldName]))
		row.Remarks = cast.ToString(item[pricebook.FieldRemarks])
		if c := cast.ToString(item[pricebook.FieldCategory]); strings.TrimSpace(c) != "" {
			row.Category = pricebook.NormalizeCategory(c)
		}
		for _, f := range numericFields {
			if v, ok := item[f]; ok {
				// numeric fields never fail to set
				_ = row.Set(f, v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

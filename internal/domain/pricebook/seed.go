package pricebook

// SeedProducts returns the starter price sheet used when nothing usable is
// persisted yet.
func SeedProducts(updatedAt int64) []Product {
	seed := []struct {
		id     string
		fields Fields
	}{
		{"p1", Fields{Name: "顾和隆 三角斗士 24/1", Category: CategorySmallFireworks, CaseCost: Num(276), CaseQuantity: Num(24), UnitCost: Num(11.5), CaseWholesalePrice: Num(480), WholesalePrice: Num(20), RetailPrice: Num(35)}},
		{"p2", Fields{Name: "顾和隆 孔雀开屏 20/1", Category: CategorySmallFireworks, CaseCost: Num(240), CaseQuantity: Num(20), UnitCost: Num(12), CaseWholesalePrice: Num(400), WholesalePrice: Num(22), RetailPrice: Num(38)}},
		{"p3", Fields{Name: "迷你孔雀开屏 36/1", Category: CategorySmallFireworks, CaseCost: Num(252), CaseQuantity: Num(36), UnitCost: Num(7), CaseWholesalePrice: Num(450), WholesalePrice: Num(13), RetailPrice: Num(15)}},
		{"p4", Fields{Name: "顾和隆 威猛加特林 12/1", Category: CategorySmallFireworks, CaseCost: Num(144), CaseQuantity: Num(12), UnitCost: Num(12), CaseWholesalePrice: Num(240), WholesalePrice: Num(20), RetailPrice: Num(35)}},
		{"p5", Fields{Name: "旧金山黑老大彩箱 48/10/10", Category: CategorySmallFireworks, CaseCost: Num(56), CaseQuantity: Num(48), UnitCost: Num(1.17), CaseWholesalePrice: Num(130), WholesalePrice: Num(3), RetailPrice: Num(5)}},
		{"p6", Fields{Name: "顾和隆 月兔 12/1", Category: CategorySmallFireworks, CaseCost: Num(117), CaseQuantity: Num(12), UnitCost: Num(9.75), CaseWholesalePrice: Num(180), WholesalePrice: Num(15), RetailPrice: Num(25)}},
		{"p11", Fields{Name: "彩菊烟花 40/12/8", Category: CategorySmallFireworks, CaseCost: Num(160), CaseQuantity: Num(40), UnitCost: Num(4), CaseWholesalePrice: Num(300), WholesalePrice: Num(7.5), RetailPrice: Num(10)}},
		{"f1", Fields{Name: "顾和隆 80发浪漫时光 日景", Category: CategoryFireworks, CaseCost: Num(80), CaseQuantity: Num(1), UnitCost: Num(80), RetailPrice: Num(168), Remarks: "日景爆款"}},
		{"f2", Fields{Name: "顾和隆 100发美焰 (彩箱)", Category: CategoryFireworks, CaseCost: Num(55), CaseQuantity: Num(1), UnitCost: Num(55), RetailPrice: Num(128)}},
		{"f5", Fields{Name: "易守华 36发九天揽月", Category: CategoryFireworks, UnitCost: Num(309), RetailPrice: Num(580)}},
		{"c1", Fields{Name: "义学 财盈门全红银花炮 4号-10封", Category: CategoryCrackers, UnitCost: Num(167), RetailPrice: Num(280)}},
	}

	out := make([]Product, len(seed))
	for i, s := range seed {
		out[i] = NewProduct(s.id, s.fields, updatedAt)
	}
	return out
}

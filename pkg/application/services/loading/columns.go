package loading

import "github.com/yintu/pmc/pkg/domain/table"

// Canonical order columns
const (
	ColProductionOrder = "生产单号"
	ColCustomerOrder   = "客户订单号"
	ColProductModel    = "产品型号"
	ColQuantity        = "数量Pcs"
	ColBOMNo           = "BOM编号"
	ColDueDate         = "客户交期"
	ColOrderValue      = "订单金额"
	ColOrderCurrency   = "订单币种"
	ColDestination     = "目的地"
	ColItemNo          = "ITEM NO."
)

// OrderColumns covers the header spellings of the domestic and overseas order books
var OrderColumns = []table.ColumnRule{
	{Canonical: ColProductionOrder, Aliases: []string{"生 產 單 号(  廠方 )", "生 產 單 号( 廠方 )", "生產單號(廠方)", "生産単号", "生产单", "PSO"}},
	{Canonical: ColCustomerOrder, Aliases: []string{"生 產 單 号(客方 )", "生產單號(客方)", "客户订单", "客方单号"}},
	{Canonical: ColProductModel, Aliases: []string{"型 號( 廠方/客方 )", "型號(廠方/客方)", "型号", "產品型號", "产品型號"}},
	{Canonical: ColQuantity, Aliases: []string{"數 量  (Pcs)", "數量(Pcs)", "数量", "订单数量"}},
	{Canonical: ColBOMNo, Aliases: []string{"BOM NO.", "BOM NO", "BOM"}},
	{Canonical: ColDueDate, Aliases: []string{"客期", "交期", "客户交期"}},
	{Canonical: ColOrderValue, Aliases: []string{"訂單金額", "金额", "订单金额(USD)"}},
	{Canonical: ColOrderCurrency, Aliases: []string{"币种", "幣種", "货币", "貨幣"}},
	{Canonical: ColDestination, Aliases: []string{"目的地", "目的國", "目的国"}},
	{Canonical: ColItemNo, Aliases: []string{"ITEM NO", "ITEM"}},
}

// Canonical shortage columns, in the fixed positional order of the shortage export
const (
	ColOrderRef             = "订单编号"
	ColPRMapping            = "P-R对应"
	ColPRBOM                = "P-RBOM"
	ColCustomerModel        = "客户型号"
	ColOTSDate              = "OTS期"
	ColLineStartDate        = "开拉期"
	ColOrderDate            = "下单日期"
	ColMaterialID           = "物料编号"
	ColMaterialName         = "物料名称"
	ColDepartment           = "领用部门"
	ColDemandQty            = "工单需求"
	ColShortageQty          = "仓存不足"
	ColPurchasedNotReturned = "已购未返"
	ColOnHand               = "手头现有"
	ColRequestGroup         = "请购组"
)

// ShortageLayout names the shortage export columns by position
var ShortageLayout = []string{
	ColOrderRef, ColPRMapping, ColPRBOM, ColCustomerModel, ColOTSDate, ColLineStartDate,
	ColOrderDate, ColMaterialID, ColMaterialName, ColDepartment, ColDemandQty,
	ColShortageQty, ColPurchasedNotReturned, ColOnHand, ColRequestGroup,
}

// MinShortageColumns is the narrowest export that can be mapped by position
const MinShortageColumns = 13

// ShortageColumns is used when the export is too narrow for the positional layout
var ShortageColumns = []table.ColumnRule{
	{Canonical: ColOrderRef, Aliases: []string{"訂單編號\n(已勾測料)", "訂單編號", "生産単号", "生产单", "生产单号", "PSO"}},
	{Canonical: ColMaterialID, Aliases: []string{"物料編號", "物料代码", "物料代碼", "物項編號"}},
	{Canonical: ColMaterialName, Aliases: []string{"物項名称", "物項名稱", "物料名稱"}},
	{Canonical: ColShortageQty, Aliases: []string{"倉存不足\n(齊套料)", "倉存不足", "欠料数量"}},
	{Canonical: ColDemandQty, Aliases: []string{"工單需求"}},
	{Canonical: ColPurchasedNotReturned, Aliases: []string{"已購未返"}},
	{Canonical: ColOnHand, Aliases: []string{"手頭現有"}},
	{Canonical: ColCustomerModel, Aliases: []string{"客戶型號"}},
	{Canonical: ColDepartment, Aliases: []string{"領用部門"}},
	{Canonical: ColRequestGroup, Aliases: []string{"請購組"}},
}

// Canonical inventory columns
const (
	ColInvMaterialID   = "物项编号"
	ColInvMaterialName = "物项名称"
	ColLatestQuote     = "最新报价"
	ColCost            = "成本单价"
	ColInvCurrency     = "货币"
)

// InventoryColumns covers the inventory list headers
var InventoryColumns = []table.ColumnRule{
	{Canonical: ColInvMaterialID, Aliases: []string{"物項編號", "物料编号", "物料編號", "物料代码"}},
	{Canonical: ColInvMaterialName, Aliases: []string{"物項名稱", "物項名称", "物料名称"}},
	{Canonical: ColLatestQuote, Aliases: []string{"最新報價"}},
	{Canonical: ColCost, Aliases: []string{"成本單價", "單價", "单价"}},
	{Canonical: ColInvCurrency, Aliases: []string{"貨幣", "币种", "幣種"}},
}

// Canonical supplier columns
const (
	ColSupMaterialID   = "物项编号"
	ColSupMaterialName = "物项名称"
	ColSupplierName    = "供应商名称"
	ColSupplierID      = "供应商号"
	ColSupPrice        = "单价"
	ColSupCurrency     = "币种"
	ColMinOrderQty     = "起订数量"
	ColLastModified    = "修改日期"
)

// SupplierColumns covers the supplier price list headers
var SupplierColumns = []table.ColumnRule{
	{Canonical: ColSupMaterialID, Aliases: []string{"物項編號", "物料编号", "物料編號"}},
	{Canonical: ColSupMaterialName, Aliases: []string{"物項名稱", "物料名称"}},
	{Canonical: ColSupplierName, Aliases: []string{"供應商名稱", "供应商"}},
	{Canonical: ColSupplierID, Aliases: []string{"供應商號", "供应商编号", "供应商代码"}},
	{Canonical: ColSupPrice, Aliases: []string{"單價"}},
	{Canonical: ColSupCurrency, Aliases: []string{"幣種", "货币", "貨幣"}},
	{Canonical: ColMinOrderQty, Aliases: []string{"起訂數量", "MOQ"}},
	{Canonical: ColLastModified, Aliases: []string{"更新日期", "最后修改日期", "修改時間"}},
}

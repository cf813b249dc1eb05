package api

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "notemarket.v1.NoteMarket"

// Method names, relative to ServiceName.
const (
	MethodPing         = "Ping"
	MethodRegister     = "Register"
	MethodLogin        = "Login"
	MethodRefreshToken = "RefreshToken"

	MethodCreateListing  = "CreateListing"
	MethodListListings   = "ListListings"
	MethodGetListing     = "GetListing"
	MethodMyListings     = "MyListings"
	MethodSearchListings = "SearchListings"
	MethodUpdateListing  = "UpdateListing"
	MethodDeleteListing  = "DeleteListing"
	MethodSellerAddress  = "SellerAddress"
	MethodPurchase       = "Purchase"
	MethodMyPurchases    = "MyPurchases"
	MethodBuyerHistory   = "BuyerHistory"
	MethodSellerHistory  = "SellerHistory"
	MethodExportSales    = "ExportSales"

	MethodCreateNote  = "CreateNote"
	MethodListNotes   = "ListNotes"
	MethodGetNote     = "GetNote"
	MethodUpdateNote  = "UpdateNote"
	MethodDeleteNote  = "DeleteNote"
	MethodSearchNotes = "SearchNotes"

	MethodRecordTransaction = "RecordTransaction"
	MethodListTransactions  = "ListTransactions"
	MethodGetTransaction    = "GetTransaction"
	MethodNoteTransactions  = "NoteTransactions"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Public reports whether method may be called without an access token.
func Public(method string) bool {
	switch method {
	case MethodPing, MethodRegister, MethodLogin, MethodRefreshToken:
		return true
	}
	return false
}

package grpc

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"google.golang.org/grpc"
)

// unary adapts a typed handler to grpc.MethodDesc, running it through the
// server's interceptor chain.
func unary[Req, Resp any](method string, call func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*GRPCServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodPing, (*GRPCServer).Ping),
		unary(api.MethodRegister, (*GRPCServer).Register),
		unary(api.MethodLogin, (*GRPCServer).Login),
		unary(api.MethodRefreshToken, (*GRPCServer).RefreshToken),

		unary(api.MethodCreateListing, (*GRPCServer).CreateListing),
		unary(api.MethodListListings, (*GRPCServer).ListListings),
		unary(api.MethodGetListing, (*GRPCServer).GetListing),
		unary(api.MethodMyListings, (*GRPCServer).MyListings),
		unary(api.MethodSearchListings, (*GRPCServer).SearchListings),
		unary(api.MethodUpdateListing, (*GRPCServer).UpdateListing),
		unary(api.MethodDeleteListing, (*GRPCServer).DeleteListing),
		unary(api.MethodSellerAddress, (*GRPCServer).SellerAddress),
		unary(api.MethodPurchase, (*GRPCServer).Purchase),
		unary(api.MethodMyPurchases, (*GRPCServer).MyPurchases),
		unary(api.MethodBuyerHistory, (*GRPCServer).BuyerHistory),
		unary(api.MethodSellerHistory, (*GRPCServer).SellerHistory),
		unary(api.MethodExportSales, (*GRPCServer).ExportSales),

		unary(api.MethodCreateNote, (*GRPCServer).CreateNote),
		unary(api.MethodListNotes, (*GRPCServer).ListNotes),
		unary(api.MethodGetNote, (*GRPCServer).GetNote),
		unary(api.MethodUpdateNote, (*GRPCServer).UpdateNote),
		unary(api.MethodDeleteNote, (*GRPCServer).DeleteNote),
		unary(api.MethodSearchNotes, (*GRPCServer).SearchNotes),

		unary(api.MethodRecordTransaction, (*GRPCServer).RecordTransaction),
		unary(api.MethodListTransactions, (*GRPCServer).ListTransactions),
		unary(api.MethodGetTransaction, (*GRPCServer).GetTransaction),
		unary(api.MethodNoteTransactions, (*GRPCServer).NoteTransactions),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notemarket/v1",
}

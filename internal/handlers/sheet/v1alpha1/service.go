// Package v1alpha1 handles the grpc sheet service interface.
//
// Messages are google.protobuf.Struct documents with snake_case keys, so the
// service needs no generated stubs; the descriptor below is registered by
// hand.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "loadout.sheet.v1alpha1.SheetService"

// Method names
const (
	MethodCreateCharacter = "CreateCharacter"
	MethodGetCharacter    = "GetCharacter"
	MethodListCharacters  = "ListCharacters"
	MethodDeleteCharacter = "DeleteCharacter"
	MethodEquip           = "Equip"
	MethodEquipFirstFree  = "EquipFirstFree"
	MethodUnequip         = "Unequip"
	MethodSetLevel        = "SetLevel"
	MethodSelectRace      = "SelectRace"
	MethodSelectClass     = "SelectClass"
	MethodSetBase         = "SetBase"
	MethodAllocatePoint   = "AllocatePoint"
	MethodRefundPoint     = "RefundPoint"
	MethodExportCharacter = "ExportCharacter"
	MethodImportCharacter = "ImportCharacter"
	MethodGetBreakdown    = "GetBreakdown"
	MethodListItems       = "ListItems"
	MethodListRaces       = "ListRaces"
	MethodListClasses     = "ListClasses"
)

// SheetServiceServer is the server API for the sheet service
type SheetServiceServer interface {
	CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Equip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EquipFirstFree(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Unequip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetLevel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SelectRace(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SelectClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetBase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AllocatePoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RefundPoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ImportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetBreakdown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListRaces(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListClasses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryFunc func(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func method(name string, bind func(SheetServiceServer) unaryFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			call := bind(srv.(SheetServiceServer))
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the sheet service
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SheetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(MethodCreateCharacter, func(s SheetServiceServer) unaryFunc { return s.CreateCharacter }),
		method(MethodGetCharacter, func(s SheetServiceServer) unaryFunc { return s.GetCharacter }),
		method(MethodListCharacters, func(s SheetServiceServer) unaryFunc { return s.ListCharacters }),
		method(MethodDeleteCharacter, func(s SheetServiceServer) unaryFunc { return s.DeleteCharacter }),
		method(MethodEquip, func(s SheetServiceServer) unaryFunc { return s.Equip }),
		method(MethodEquipFirstFree, func(s SheetServiceServer) unaryFunc { return s.EquipFirstFree }),
		method(MethodUnequip, func(s SheetServiceServer) unaryFunc { return s.Unequip }),
		method(MethodSetLevel, func(s SheetServiceServer) unaryFunc { return s.SetLevel }),
		method(MethodSelectRace, func(s SheetServiceServer) unaryFunc { return s.SelectRace }),
		method(MethodSelectClass, func(s SheetServiceServer) unaryFunc { return s.SelectClass }),
		method(MethodSetBase, func(s SheetServiceServer) unaryFunc { return s.SetBase }),
		method(MethodAllocatePoint, func(s SheetServiceServer) unaryFunc { return s.AllocatePoint }),
		method(MethodRefundPoint, func(s SheetServiceServer) unaryFunc { return s.RefundPoint }),
		method(MethodExportCharacter, func(s SheetServiceServer) unaryFunc { return s.ExportCharacter }),
		method(MethodImportCharacter, func(s SheetServiceServer) unaryFunc { return s.ImportCharacter }),
		method(MethodGetBreakdown, func(s SheetServiceServer) unaryFunc { return s.GetBreakdown }),
		method(MethodListItems, func(s SheetServiceServer) unaryFunc { return s.ListItems }),
		method(MethodListRaces, func(s SheetServiceServer) unaryFunc { return s.ListRaces }),
		method(MethodListClasses, func(s SheetServiceServer) unaryFunc { return s.ListClasses }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "loadout/sheet/v1alpha1/sheet_service.proto",
}

// RegisterSheetServiceServer registers the handler on a gRPC server
func RegisterSheetServiceServer(s grpc.ServiceRegistrar, srv SheetServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

package registry

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"nounsIndexer/internal/model"
)

// args reads positional raw arguments. The first conversion error sticks and
// later reads return zero values.
type args struct {
	event  string
	values []interface{}
	base   model.Base
	err    error
}

func (a *args) fail(i int, err error) {
	if a.err == nil {
		a.err = fmt.Errorf("%s arg %d: %w", a.event, i, err)
	}
}

func (a *args) account(i int) model.Account {
	address, err := asAddress(a.values[i])
	if err != nil {
		a.fail(i, err)
		return model.Account{}
	}
	return model.NewAccount(address)
}

func (a *args) accounts(i int) []model.Account {
	switch v := a.values[i].(type) {
	case []common.Address:
		return model.NewAccounts(v)
	default:
		a.fail(i, fmt.Errorf("unsupported address list type %T", a.values[i]))
		return nil
	}
}

func (a *args) amount(i int) decimal.Decimal {
	value, err := asBigInt(a.values[i])
	if err != nil {
		a.fail(i, err)
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, 0)
}

func (a *args) amounts(i int) []decimal.Decimal {
	values, ok := a.values[i].([]*big.Int)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported int list type %T", a.values[i]))
		return nil
	}
	out := make([]decimal.Decimal, 0, len(values))
	for _, value := range values {
		out = append(out, decimal.NewFromBigInt(value, 0))
	}
	return out
}

func (a *args) number(i int) uint64 {
	value, err := asBigInt(a.values[i])
	if err != nil {
		a.fail(i, err)
		return 0
	}
	out, err := uint64FromBig(value)
	if err != nil {
		a.fail(i, err)
		return 0
	}
	return out
}

func (a *args) numbers(i int) []uint64 {
	values, ok := a.values[i].([]*big.Int)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported int list type %T", a.values[i]))
		return nil
	}
	out := make([]uint64, 0, len(values))
	for _, value := range values {
		converted, err := uint64FromBig(value)
		if err != nil {
			a.fail(i, err)
			return nil
		}
		out = append(out, converted)
	}
	return out
}

func (a *args) number32(i int) uint32 {
	value := a.number(i)
	if value > uint64(^uint32(0)) {
		a.fail(i, fmt.Errorf("uint32 overflow: %d", value))
		return 0
	}
	return uint32(value)
}

func (a *args) direction(i int) model.VoteDirection {
	value := a.number(i)
	if value > 255 {
		a.fail(i, fmt.Errorf("uint8 overflow: %d", value))
		return 0
	}
	direction, err := model.ParseVoteDirection(uint8(value))
	if err != nil {
		a.fail(i, err)
	}
	return direction
}

func (a *args) flag(i int) bool {
	v, ok := a.values[i].(bool)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported bool type %T", a.values[i]))
	}
	return v
}

func (a *args) str(i int) string {
	v, ok := a.values[i].(string)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported string type %T", a.values[i]))
	}
	return v
}

func (a *args) strs(i int) []string {
	v, ok := a.values[i].([]string)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported string list type %T", a.values[i]))
	}
	return v
}

func (a *args) bytes(i int) hexutil.Bytes {
	switch v := a.values[i].(type) {
	case []byte:
		return append(hexutil.Bytes{}, v...)
	case [32]byte:
		return append(hexutil.Bytes{}, v[:]...)
	case common.Hash:
		return append(hexutil.Bytes{}, v.Bytes()...)
	default:
		a.fail(i, fmt.Errorf("unsupported bytes type %T", a.values[i]))
		return nil
	}
}

func (a *args) bytesList(i int) []hexutil.Bytes {
	values, ok := a.values[i].([][]byte)
	if !ok {
		a.fail(i, fmt.Errorf("unsupported bytes list type %T", a.values[i]))
		return nil
	}
	out := make([]hexutil.Bytes, 0, len(values))
	for _, value := range values {
		out = append(out, append(hexutil.Bytes{}, value...))
	}
	return out
}

// transactions reads four consecutive arguments: targets, values, signatures, calldatas.
func (a *args) transactions(i int) model.ProposalTransactions {
	return model.ProposalTransactions{
		Targets:    a.accounts(i),
		Values:     a.amounts(i + 1),
		Signatures: a.strs(i + 2),
		Calldatas:  a.bytesList(i + 3),
	}
}

// seed reads the NounCreated seed tuple, decoded as an anonymous struct.
func (a *args) seed(i int) model.Seed {
	v := reflect.ValueOf(a.values[i])
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		a.fail(i, fmt.Errorf("unsupported seed type %T", a.values[i]))
		return model.Seed{}
	}

	field := func(name string) uint64 {
		f := v.FieldByName(name)
		if !f.IsValid() {
			a.fail(i, fmt.Errorf("seed missing field %s", name))
			return 0
		}
		value, err := asBigInt(f.Interface())
		if err != nil {
			a.fail(i, err)
			return 0
		}
		out, err := uint64FromBig(value)
		if err != nil {
			a.fail(i, err)
		}
		return out
	}

	return model.Seed{
		Background: field("Background"),
		Body:       field("Body"),
		Accessory:  field("Accessory"),
		Head:       field("Head"),
		Glasses:    field("Glasses"),
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("invalid address: %s", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil int")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func uint64FromBig(value *big.Int) (uint64, error) {
	if value.Sign() < 0 || !value.IsUint64() {
		return 0, fmt.Errorf("uint64 overflow: %s", value.String())
	}
	return value.Uint64(), nil
}

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS is the MUS serializer for ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	return ID(tmp), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// AppInfoMUS is the MUS serializer for AppInfo.
// Payload is not part of the encoding.
var AppInfoMUS = appInfoMUS{}

type appInfoMUS struct{}

func (s appInfoMUS) Marshal(v AppInfo, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Package, bs[n:])
	n += ord.String.Marshal(v.Activity, bs[n:])
	return n + varint.Uint64.Marshal(v.Order, bs[n:])
}

func (s appInfoMUS) Unmarshal(bs []byte) (v AppInfo, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Package, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Activity, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Order, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s appInfoMUS) Size(v AppInfo) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Package)
	size += ord.String.Size(v.Activity)
	return size + varint.Uint64.Size(v.Order)
}

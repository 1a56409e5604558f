// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types that reach storage.
// The cache payload is two ids and a float32 slice, which is small
// enough that a generator would be more machinery than the format.
var (
	// IDMUS serializes an ID as a varint.
	IDMUS = idSer{}

	// ProductVectorMUS serializes a cached product embedding.
	ProductVectorMUS = productVectorSer{}

	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
)

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type productVectorSer struct{}

func (productVectorSer) Marshal(v ProductVector, bs []byte) int {
	n := IDMUS.Marshal(v.ProductID, bs)
	n += IDMUS.Marshal(v.ContentHash, bs[n:])
	n += float32SliceMUS.Marshal(v.Values, bs[n:])
	return n
}

func (productVectorSer) Unmarshal(bs []byte) (ProductVector, int, error) {
	var v ProductVector
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.ProductID = id

	hash, n1, err := IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.ContentHash = hash

	values, n2, err := float32SliceMUS.Unmarshal(bs[n:])
	n += n2
	if err != nil {
		return v, n, err
	}
	v.Values = values
	return v, n, nil
}

func (productVectorSer) Size(v ProductVector) int {
	return IDMUS.Size(v.ProductID) + IDMUS.Size(v.ContentHash) + float32SliceMUS.Size(v.Values)
}

func (productVectorSer) Skip(bs []byte) (int, error) {
	n, err := IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n2, err := float32SliceMUS.Skip(bs[n:])
	return n + n2, err
}

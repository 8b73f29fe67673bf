package filter

type Filter interface {
	Add(key int64)             // add key to filter
	Build()                    // generate bitmap from added keys
	MayContain(key int64) bool // check if key may be in filter
	KeyLen() int               // num of added keys
}

// Package layout renders template source strings whose placeholders name
// values in a data map, using github.com/valyala/fasttemplate to locate
// the tags. A tag is a dotted name with an optional modifier:
//
//	<ul {{ list:attrs }}>{{ items:safe }}</ul><p>{{ user.name }}</p>
//
// Values are resolved by the htmlstring renderer exactly as they would be in
// a fragment template, so escaping, attribute expansion and composition
// behave the same in both frontends.
package layout

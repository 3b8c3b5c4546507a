// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBodyBytes(t *testing.T) {
	var b []byte
	var err error
	t.Run("happy path", func(t *testing.T) {
		b, err = BodyBytes(nil)
		assert.Nil(t, b)
		assert.NoError(t, err)
		b, err = BodyBytes("foo")
		assert.Equal(t, []byte("foo"), b)
		assert.NoError(t, err)
		b2 := []byte("bar")
		b, err = BodyBytes(b2)
		assert.Equal(t, []byte("bar"), b)
		b, err = BodyBytes(strings.NewReader("baz"))
		assert.Equal(t, []byte("baz"), b)
		assert.NoError(t, err)
		b, err = BodyBytes(ioutil.NopCloser(bytes.NewReader(b2)))
		assert.Equal(t, []byte("bar"), b)
		assert.NoError(t, err)
		b, err = BodyBytes(10)
		assert.Nil(t, b)
		assert.EqualError(t, err, badBodyTypeMsg)
	})
	t.Run("multipart", func(t *testing.T) {
		m := &Multipart{}
		require.NoError(t, m.SetBoundary("xyz"))
		m.Append("a", "1")
		b, err = BodyBytes(m)
		require.NoError(t, err)
		assert.Equal(t, "--xyz\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\n1\r\n--xyz--\r\n", string(b))
		var nilForm *Multipart
		b, err = BodyBytes(nilForm)
		assert.Nil(t, b)
		assert.NoError(t, err)
	})
	t.Run("reader errors", func(t *testing.T) {
		expectedErr := errors.New("ham")
		t.Run("Read", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(10, expectedErr).Once()
			b, err = BodyBytes(m)
			assert.Nil(t, b)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
		t.Run("Close", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(0, io.EOF).Once()
			m.On("Close").Return(expectedErr).Once()
			b, err = BodyBytes(m)
			assert.Nil(t, b)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
	})
}

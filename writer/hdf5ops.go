package writer

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// createTable creates a chunked, unlimited-length, deflate-compressed
// dataset shaped after datatype, the same dataspace/proplist/datatype
// sequence as the teacher's hdf5.go createTable.
func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}

	space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, fmt.Errorf("dataspace: %w", err)
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, fmt.Errorf("proplist: %w", err)
	}
	if err := plist.SetChunk([]uint{4096}); err != nil {
		return nil, fmt.Errorf("set chunk: %w", err)
	}
	if err := plist.SetDeflate(4); err != nil {
		return nil, fmt.Errorf("set deflate: %w", err)
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, fmt.Errorf("datatype: %w", err)
	}

	dset, err := group.CreateDatasetWith(name, dtype, space, plist)
	if err != nil {
		return nil, fmt.Errorf("create dataset %s: %w", name, err)
	}
	return dset, nil
}

// appendRows extends dataset by len(rows) and writes rows into the new
// tail slice, mirroring the teacher's writeArrayToTable resize+hyperslab
// pattern.
func appendRows(dataset *hdf5.Dataset, rows []candidateRow) error {
	length := uint(len(rows))

	dimsGot, _, err := dataset.Space().SimpleExtentDims()
	if err != nil {
		return fmt.Errorf("extent dims: %w", err)
	}
	existing := dimsGot[0]

	if err := dataset.Resize([]uint{existing + length}); err != nil {
		return fmt.Errorf("resize: %w", err)
	}

	filespace := dataset.Space()
	if err := filespace.SelectHyperslab([]uint{existing}, nil, []uint{length}, nil); err != nil {
		return fmt.Errorf("select hyperslab: %w", err)
	}

	memspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return fmt.Errorf("memspace: %w", err)
	}
	defer memspace.Close()

	if err := dataset.WriteSubset(&rows, memspace, filespace); err != nil {
		return fmt.Errorf("write subset: %w", err)
	}
	return nil
}

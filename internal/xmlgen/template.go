package xmlgen

import (
	"time"

	"plcc/internal/xmltree"
)

// Anchor and header tags of the skeleton document. The translator locates
// its insertion points by these names.
const (
	FileHeaderTag      = "FileHeader"
	ContentHeaderTag   = "ContentHeader"
	TypesTag           = "Types"
	GlobalNamespaceTag = "GlobalNamespace"
	InstancesTag       = "Instances"
	ConfigurationTag   = "Configuration"
	ResourceTag        = "Resource"
	GlobalVarsTag      = "GlobalVars"
)

// OmronSchema is the schema location advertised on the Project root.
const OmronSchema = "https://www.ia.omron.com/Smc IEC61131_10_Ed1_0_SmcExt1_0_Spc1_0.xsd"

// vendorDataName tags vendor-specific addData/data payloads.
const vendorDataName = "www.ia.omron.com/Smc"

// creationTimeFormat is the timestamp layout the target tool accepts.
const creationTimeFormat = "2006-01-02T15:04:05"

// OmronTemplate builds the skeleton document every generation run starts
// from:
//
//	<?xml version="1.0"?>
//	<Project xmlns:xsi="..." xmlns:smcext="..." xsi:schemaLocation="..." schemaVersion="1" xmlns="...">
//	    <FileHeader companyName="OMRON Corporation" productName="Sysmac Studio" productVersion="1.30.0.0"/>
//	    <ContentHeader name="..." creationDateTime="..."/>
//	    <Types>
//	        <GlobalNamespace>
//	        </GlobalNamespace>
//	    </Types>
//	    <Instances>
//	    </Instances>
//	</Project>
func OmronTemplate(projectName string, creation time.Time) *xmltree.Node {
	if projectName == "" {
		projectName = "Sample"
	}
	return xmltree.New("Project").
		Attribute("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance").
		Attribute("xmlns:smcext", "https://www.ia.omron.com/Smc").
		Attribute("xsi:schemaLocation", OmronSchema).
		Attribute("schemaVersion", "1").
		Attribute("xmlns", "www.iec.ch/public/TC65SC65BWG7TF10").
		Child(FileHeader().
			Attribute("companyName", "OMRON Corporation").
			Attribute("productName", "Sysmac Studio").
			Attribute("productVersion", "1.30.0.0").Node()).
		Child(ContentHeader().
			Attribute("name", projectName).
			Attribute("creationDateTime", creation.Format(creationTimeFormat)).Node()).
		Child(Types().Child(GlobalNamespace()).Node()).
		Child(Instances().Node())
}

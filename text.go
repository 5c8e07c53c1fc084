package fontview

// DefaultText is the body shown when no text file is given.
const DefaultText = "" +
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
	"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis " +
	"nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. " +
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu " +
	"fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in " +
	"culpa qui officia deserunt mollit anim id est laborum. " +
	"Velit senectus parturient malesuada arcu dui natoque, augue rhoncus netus praesent per " +
	"maecenas, proin magnis feugiat sagittis neque. Ad vestibulum inceptos gravida mauris " +
	"congue curae venenatis, porttitor interdum sed turpis varius hendrerit accumsan commodo, " +
	"condimentum dictumst himenaeos hac a imperdiet. Euismod quisque penatibus litora nisl " +
	"semper conubia per sollicitudin ultricies, vitae himenaeos senectus dapibus cubilia " +
	"imperdiet taciti aptent ante, in metus a hac magnis natoque ullamcorper turpis."
